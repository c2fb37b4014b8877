package game

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// generationVerifyRetries bounds the re-checks for prompts before
	// the batch is fired. Each retry waits progressively longer.
	generationVerifyRetries = 3
	generationRetryBase     = 2 * time.Second

	// generationSettleDelay gives the final image writes a moment to
	// land before voting opens.
	generationSettleDelay = 2 * time.Second
)

// beginGeneration verifies the round's prompts exist and fires the
// generation batch. A round that shows no prompts yet is retried
// through the scheduler rather than blocking; when the retries run out
// the round is failed open into voting with a recorded error.
func (e *Engine) beginGeneration(roundID string, attempt int) {
	round, ok := e.store.GetRound(roundID)
	if !ok || round.Status != RoundGenerating {
		return
	}
	prompts := e.store.PromptsByRound(roundID)
	if len(prompts) == 0 {
		if attempt <= generationVerifyRetries {
			delay := time.Duration(attempt) * generationRetryBase
			e.log.Warn("no prompts visible yet, retrying generation check",
				zap.String("round_id", roundID),
				zap.Int("attempt", attempt))
			e.sched.ScheduleAfter(delay, func() {
				e.beginGeneration(roundID, attempt+1)
			})
			return
		}
		e.failGeneration(roundID, "no prompts found for generation")
		return
	}

	round, err := e.store.UpdateRound(roundID, func(round *Round) error {
		round.ExpectedImages = len(prompts)
		return nil
	})
	if err != nil {
		return
	}
	e.persistRound(round)
	if err := e.gen.GenerateBatch(context.Background(), round, prompts); err != nil {
		if attempt <= generationVerifyRetries {
			delay := time.Duration(attempt) * generationRetryBase
			e.log.Warn("generation dispatch failed, retrying",
				zap.String("round_id", roundID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			e.sched.ScheduleAfter(delay, func() {
				e.beginGeneration(roundID, attempt+1)
			})
			return
		}
		e.failGeneration(roundID, "generation dispatch failed: "+err.Error())
		return
	}
	e.log.Info("generation batch fired",
		zap.String("round_id", roundID),
		zap.Int("expected_images", len(prompts)))
}

// failGeneration records the error on the round and forces it forward
// into voting with whatever images exist. One dependency hiccup never
// blocks the whole room.
func (e *Engine) failGeneration(roundID, message string) {
	round, err := e.store.UpdateRound(roundID, func(round *Round) error {
		if round.Status != RoundGenerating {
			return errTransitionRace
		}
		round.GenerationError = message
		return nil
	})
	if err != nil {
		return
	}
	e.persistRound(round)
	e.log.Error("generation failed open",
		zap.String("room_id", round.RoomID),
		zap.String("round_id", roundID),
		zap.String("reason", message))
	e.cancelAndTransition(roundID)
}

// HandleImageResult is the per-image progress callback from the
// generation collaborator. Errors still produce a placeholder record so
// progress counting stays uniform. When the batch is complete the
// pending deadline is superseded by a short settle timer.
func (e *Engine) HandleImageResult(roundID, promptID, url, genErr string) {
	round, ok := e.store.GetRound(roundID)
	if !ok || round.Status != RoundGenerating {
		e.log.Debug("image result after generation window, dropped",
			zap.String("round_id", roundID),
			zap.String("prompt_id", promptID))
		return
	}

	ownerID := ""
	for _, prompt := range e.store.PromptsByRound(roundID) {
		if prompt.ID == promptID {
			ownerID = prompt.PlayerID
			break
		}
	}
	if ownerID == "" {
		e.log.Warn("image result for unknown prompt",
			zap.String("round_id", roundID),
			zap.String("prompt_id", promptID))
		return
	}

	image := e.store.InsertImage(&GeneratedImage{
		RoundID:     roundID,
		PromptID:    promptID,
		PlayerID:    ownerID,
		URL:         url,
		Error:       genErr,
		GeneratedAt: time.Now().UTC(),
	})
	e.persistImage(round, image)

	done := false
	var handle string
	round, err := e.store.UpdateRound(roundID, func(round *Round) error {
		if round.Status != RoundGenerating {
			return errTransitionRace
		}
		round.CompletedImages++
		done = round.ExpectedImages > 0 && round.CompletedImages >= round.ExpectedImages
		if done {
			handle = round.ScheduledTransitionID
			round.ScheduledTransitionID = ""
		}
		return nil
	})
	if err != nil {
		return
	}
	e.persistRound(round)
	e.notifyRoom(round.RoomID)
	if !done {
		return
	}
	if handle != "" {
		e.sched.Cancel(handle)
	}
	e.log.Info("generation batch complete, advancing early",
		zap.String("room_id", round.RoomID),
		zap.String("round_id", roundID),
		zap.Int("images", round.CompletedImages))
	e.scheduleTransition(roundID, time.Now().UTC().Add(generationSettleDelay), RoundGenerating)
}

// HandleBatchFailure is the whole-batch failure signal from the
// generation collaborator.
func (e *Engine) HandleBatchFailure(roundID, message string) {
	e.failGeneration(roundID, message)
}

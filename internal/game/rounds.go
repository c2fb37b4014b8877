package game

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// minPhaseDwell is how long a round must have been in its current phase
// before a transition is honored. A timer that fires just after an
// early trigger already advanced the phase computes a near-zero dwell
// against the new deadline and is absorbed as a no-op.
const minPhaseDwell = 250 * time.Millisecond

// errTransitionRace marks a duplicate transition attempt. Absorbed,
// never surfaced past the transition entry point.
var errTransitionRace = errors.New("transition superseded")

func (e *Engine) phaseDuration(status RoundStatus) time.Duration {
	switch status {
	case RoundPrompt:
		return time.Duration(e.cfg.PromptDurationSeconds) * time.Second
	case RoundGenerating:
		return time.Duration(e.cfg.GenerateDurationSeconds) * time.Second
	case RoundVoting:
		return time.Duration(e.cfg.VoteDurationSeconds) * time.Second
	case RoundResults:
		return time.Duration(e.cfg.ResultsDurationSeconds) * time.Second
	case RoundComplete:
		return 0
	default:
		return 0
	}
}

// StartRound creates a round in the prompt phase and schedules its
// timer-driven transition. The caller updates the room's current-round
// pointer.
func (e *Engine) StartRound(room *Room, number int, question *Question) (*Round, error) {
	if question == nil {
		return nil, errors.New("no question available")
	}
	now := time.Now().UTC()
	round := e.store.InsertRound(&Round{
		RoomID:       room.ID,
		Number:       number,
		QuestionID:   question.ID,
		QuestionText: question.Text,
		Status:       RoundPrompt,
		PhaseEndTime: now.Add(e.phaseDuration(RoundPrompt)),
	})
	e.persistRound(round)
	e.recordEvent(room.ID, round.ID, "round_started", eventPayload{
		RoundNumber: number,
		Phase:       string(RoundPrompt),
		Question:    question.Text,
	})
	e.scheduleTransition(round.ID, round.PhaseEndTime, RoundPrompt)
	e.log.Info("round started",
		zap.String("room_id", room.ID),
		zap.String("round_id", round.ID),
		zap.Int("round_number", number))
	return round, nil
}

// scheduleTransition arms the next timer-driven transition and stores
// its handle on the round so an early trigger can cancel it. Handles
// are never reused across transitions.
func (e *Engine) scheduleTransition(roundID string, at time.Time, from RoundStatus) {
	handle := e.sched.ScheduleAt(at, func() {
		e.timerFired(roundID, from)
	})
	_, err := e.store.UpdateRound(roundID, func(round *Round) error {
		round.ScheduledTransitionID = handle
		return nil
	})
	if err != nil {
		e.sched.Cancel(handle)
	}
}

// timerFired is the timer-driven path into Transition. The expected
// status check drops timers that outlived the phase they were armed
// for; anything closer races through the dwell guard instead.
func (e *Engine) timerFired(roundID string, expected RoundStatus) {
	round, ok := e.store.GetRound(roundID)
	if !ok {
		return
	}
	if round.Status != expected {
		e.log.Debug("stale phase timer dropped",
			zap.String("round_id", roundID),
			zap.String("armed_for", string(expected)),
			zap.String("status", string(round.Status)))
		return
	}
	e.Transition(roundID)
}

// Transition is the single idempotent entry point for phase
// advancement. Both the phase timer and the early-completion checks
// converge here; the dwell guard plus the atomic status flip inside one
// store update make duplicate invocations no-ops.
func (e *Engine) Transition(roundID string) {
	now := time.Now().UTC()
	var from, to RoundStatus
	round, err := e.store.UpdateRound(roundID, func(round *Round) error {
		from = round.Status
		if round.Status == RoundComplete {
			return errTransitionRace
		}
		dwell := now.Sub(round.PhaseEndTime.Add(-e.phaseDuration(round.Status)))
		if dwell < minPhaseDwell {
			return errTransitionRace
		}
		round.ScheduledTransitionID = ""
		switch round.Status {
		case RoundPrompt:
			round.Status = RoundGenerating
			round.ExpectedImages = 0
			round.CompletedImages = 0
		case RoundGenerating:
			round.Status = RoundVoting
		case RoundVoting:
			round.Status = RoundResults
		case RoundResults:
			round.Status = RoundComplete
		}
		to = round.Status
		round.PhaseEndTime = now.Add(e.phaseDuration(round.Status))
		return nil
	})
	if err != nil {
		if errors.Is(err, errTransitionRace) {
			e.log.Debug("duplicate transition absorbed", zap.String("round_id", roundID))
		}
		return
	}

	switch to {
	case RoundGenerating:
		e.scheduleTransition(round.ID, round.PhaseEndTime, RoundGenerating)
		e.beginGeneration(round.ID, 1)
	case RoundVoting:
		e.scheduleTransition(round.ID, round.PhaseEndTime, RoundVoting)
	case RoundResults:
		e.applyScores(round)
		e.scheduleTransition(round.ID, round.PhaseEndTime, RoundResults)
	case RoundComplete:
		e.finishRound(round)
	}

	e.persistRound(round)
	e.recordEvent(round.RoomID, round.ID, "phase_advanced", eventPayload{
		RoundNumber: round.Number,
		Phase:       string(to),
	})
	e.log.Info("phase advanced",
		zap.String("room_id", round.RoomID),
		zap.String("round_id", round.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	e.notifyRoom(round.RoomID)
}

// cancelAndTransition is the shared early-transition pattern: clear the
// stored handle first so a late cancel never touches a newer timer,
// cancel the timer (already fired or canceled is fine), then advance.
func (e *Engine) cancelAndTransition(roundID string) {
	var handle string
	_, err := e.store.UpdateRound(roundID, func(round *Round) error {
		handle = round.ScheduledTransitionID
		round.ScheduledTransitionID = ""
		return nil
	})
	if err != nil {
		return
	}
	if handle != "" {
		e.sched.Cancel(handle)
	}
	e.Transition(roundID)
}

// finishRound runs after results -> complete: either the next round is
// scheduled after a short grace delay or the game ends.
func (e *Engine) finishRound(round *Round) {
	room, ok := e.store.GetRoom(round.RoomID)
	if !ok {
		return
	}
	if round.Number < room.RoundsTotal {
		grace := time.Duration(e.cfg.NextRoundGraceSeconds) * time.Second
		e.sched.ScheduleAfter(grace, func() {
			if err := e.StartNextRound(room.ID); err != nil {
				e.log.Error("failed to start next round",
					zap.String("room_id", room.ID), zap.Error(err))
			}
		})
		return
	}
	e.EndGame(room.ID)
}

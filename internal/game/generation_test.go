package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationRetriesThenFailsOpen(t *testing.T) {
	engine, sched, gen := newTestEngine(t)
	room, _ := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)

	// The prompt timer expires with nobody having submitted anything.
	agePhase(t, engine, round.ID)
	engine.Transition(round.ID)
	updated, _ := engine.store.GetRound(round.ID)
	require.Equal(t, RoundGenerating, updated.Status)

	// Each retry re-checks for prompts and finds none; the last one
	// gives up and fails the round open.
	for i := 0; i < generationVerifyRetries-1; i++ {
		require.True(t, sched.FireNext())
		mid, _ := engine.store.GetRound(round.ID)
		require.Equal(t, RoundGenerating, mid.Status, "retry %d must not advance", i+1)
	}
	agePhase(t, engine, round.ID)
	require.True(t, sched.FireNext())

	final, _ := engine.store.GetRound(round.ID)
	assert.Equal(t, RoundVoting, final.Status, "exhausted retries fail open into voting")
	assert.Equal(t, "no prompts found for generation", final.GenerationError)
	assert.Empty(t, engine.store.ImagesByRound(round.ID))
	assert.Equal(t, 0, gen.batchCount())
}

func TestGenerationDispatchErrorRetries(t *testing.T) {
	engine, sched, gen := newTestEngine(t)
	gen.err = errors.New("broker unavailable")
	room, players := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)
	agePhase(t, engine, round.ID)

	for _, p := range players {
		_, err := engine.SubmitPrompt(room.ID, p.ID, "a prompt worth drawing")
		require.NoError(t, err)
	}
	updated, _ := engine.store.GetRound(round.ID)
	require.Equal(t, RoundGenerating, updated.Status)
	require.Equal(t, 1, gen.batchCount())

	// The dispatch keeps failing through every retry.
	for i := 0; i < generationVerifyRetries-1; i++ {
		require.True(t, sched.FireNext())
	}
	agePhase(t, engine, round.ID)
	require.True(t, sched.FireNext())

	final, _ := engine.store.GetRound(round.ID)
	assert.Equal(t, RoundVoting, final.Status)
	assert.Contains(t, final.GenerationError, "broker unavailable")
	assert.Equal(t, 1+generationVerifyRetries, gen.batchCount())
}

func TestImageResultsDriveEarlyCompletion(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, players := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)
	agePhase(t, engine, round.ID)

	for _, p := range players {
		_, err := engine.SubmitPrompt(room.ID, p.ID, "a prompt worth drawing")
		require.NoError(t, err)
	}
	prompts := engine.store.PromptsByRound(round.ID)
	require.Len(t, prompts, 2)

	engine.HandleImageResult(round.ID, prompts[0].ID, "https://img.test/a.png", "")
	mid, _ := engine.store.GetRound(round.ID)
	require.Equal(t, RoundGenerating, mid.Status)
	require.Equal(t, 1, mid.CompletedImages)

	engine.HandleImageResult(round.ID, prompts[1].ID, "", "model refused the prompt")

	done, _ := engine.store.GetRound(round.ID)
	assert.Equal(t, 2, done.CompletedImages)
	assert.Equal(t, RoundGenerating, done.Status, "a settle delay runs before voting opens")

	agePhase(t, engine, round.ID)
	sched.FireAll()
	final, _ := engine.store.GetRound(round.ID)
	assert.Equal(t, RoundVoting, final.Status)

	images := engine.store.ImagesByRound(round.ID)
	require.Len(t, images, 2, "a failed image still gets a placeholder record")
	var failed int
	for _, img := range images {
		if img.Error != "" {
			failed++
			assert.Empty(t, img.URL)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestLateImageResultDropped(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, players := startedGame(t, engine, sched, "Ada", "Ben")
	round := votingRound(t, engine, sched, room.ID, players)

	prompts := engine.store.PromptsByRound(round.ID)
	engine.HandleImageResult(round.ID, prompts[0].ID, "https://img.test/dup.png", "")

	assert.Len(t, engine.store.ImagesByRound(round.ID), 2,
		"results after the generation window are dropped")
}

func TestImageResultForUnknownPromptIgnored(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, players := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)
	agePhase(t, engine, round.ID)

	for _, p := range players {
		_, err := engine.SubmitPrompt(room.ID, p.ID, "a prompt worth drawing")
		require.NoError(t, err)
	}

	engine.HandleImageResult(round.ID, "no-such-prompt", "https://img.test/x.png", "")
	updated, _ := engine.store.GetRound(round.ID)
	assert.Equal(t, 0, updated.CompletedImages)
	assert.Empty(t, engine.store.ImagesByRound(round.ID))
}

func TestBatchFailureFailsOpenWithPartialImages(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, players := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)
	agePhase(t, engine, round.ID)

	for _, p := range players {
		_, err := engine.SubmitPrompt(room.ID, p.ID, "a prompt worth drawing")
		require.NoError(t, err)
	}
	prompts := engine.store.PromptsByRound(round.ID)
	engine.HandleImageResult(round.ID, prompts[0].ID, "https://img.test/a.png", "")

	agePhase(t, engine, round.ID)
	engine.HandleBatchFailure(round.ID, "generation worker crashed")

	final, _ := engine.store.GetRound(round.ID)
	assert.Equal(t, RoundVoting, final.Status)
	assert.Equal(t, "generation worker crashed", final.GenerationError)
	assert.Len(t, engine.store.ImagesByRound(round.ID), 1,
		"images already delivered survive the failure")
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundVisitsPhasesInOrder(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, players := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)
	require.Equal(t, RoundPrompt, round.Status)

	engine.store.UpsertPrompt(round.ID, players[0].ID, "a red barn at night")
	visited := []RoundStatus{round.Status}
	for i := 0; i < 4; i++ {
		agePhase(t, engine, round.ID)
		engine.Transition(round.ID)
		updated, ok := engine.store.GetRound(round.ID)
		require.True(t, ok)
		visited = append(visited, updated.Status)
	}
	assert.Equal(t, []RoundStatus{
		RoundPrompt, RoundGenerating, RoundVoting, RoundResults, RoundComplete,
	}, visited)
}

func TestTransitionIsIdempotent(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, _ := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)

	agePhase(t, engine, round.ID)
	// Timer and early trigger racing: the second call lands inside the
	// new phase's dwell window and is absorbed.
	engine.Transition(round.ID)
	engine.Transition(round.ID)

	updated, ok := engine.store.GetRound(round.ID)
	require.True(t, ok)
	assert.Equal(t, RoundGenerating, updated.Status,
		"double invocation must advance exactly one phase")
}

func TestTransitionDwellGuardBlocksFreshPhase(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, _ := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)

	// No aging: the round just entered prompt, so the dwell guard
	// treats this as a duplicate of whatever moved it there.
	engine.Transition(round.ID)

	updated, ok := engine.store.GetRound(round.ID)
	require.True(t, ok)
	assert.Equal(t, RoundPrompt, updated.Status)
}

func TestTransitionOnMissingRoundIsNoOp(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	engine.Transition("no-such-round")
}

func TestStaleTimerForEarlierPhaseDropped(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, _ := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)

	agePhase(t, engine, round.ID)
	engine.Transition(round.ID) // now generating

	// A timer armed for the prompt phase that somehow survived must
	// not advance the generating phase.
	agePhase(t, engine, round.ID)
	engine.timerFired(round.ID, RoundPrompt)

	updated, ok := engine.store.GetRound(round.ID)
	require.True(t, ok)
	assert.Equal(t, RoundGenerating, updated.Status)
}

func TestSchedulingStoresAndReplacesHandle(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, _ := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)
	require.NotEmpty(t, round.ScheduledTransitionID)
	first := round.ScheduledTransitionID

	agePhase(t, engine, round.ID)
	engine.Transition(round.ID)

	updated, ok := engine.store.GetRound(round.ID)
	require.True(t, ok)
	assert.NotEmpty(t, updated.ScheduledTransitionID)
	assert.NotEqual(t, first, updated.ScheduledTransitionID,
		"handles are never reused across transitions")
}

func TestRoundCompleteSchedulesNextRound(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, _ := startedGame(t, engine, sched, "Ada", "Ben")
	round := currentRound(t, engine, room.ID)

	for i := 0; i < 4; i++ {
		agePhase(t, engine, round.ID)
		engine.Transition(round.ID)
	}
	updated, ok := engine.store.GetRound(round.ID)
	require.True(t, ok)
	require.Equal(t, RoundComplete, updated.Status)

	// The grace-delay job starts round two.
	sched.FireAll()
	next := currentRound(t, engine, room.ID)
	assert.Equal(t, 2, next.Number)
	assert.Equal(t, RoundPrompt, next.Status)

	updatedRoom, _ := engine.store.GetRoom(room.ID)
	assert.Equal(t, 2, updatedRoom.CurrentRound)
	assert.Equal(t, RoomPlaying, updatedRoom.Status)
}

func TestFinalRoundEndsGame(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, _ := startedGame(t, engine, sched, "Ada", "Ben")

	for number := 1; number <= room.RoundsTotal; number++ {
		round := currentRound(t, engine, room.ID)
		require.Equal(t, number, round.Number)
		for i := 0; i < 4; i++ {
			agePhase(t, engine, round.ID)
			engine.Transition(round.ID)
		}
		sched.FireAll()
	}

	updatedRoom, _ := engine.store.GetRoom(room.ID)
	assert.Equal(t, RoomFinished, updatedRoom.Status)
	_, hasRound := engine.store.CurrentRound(room.ID)
	assert.False(t, hasRound, "no round should be active after the game ends")
}

func TestQuestionsNotRepeatedAcrossRounds(t *testing.T) {
	engine, sched, _ := newTestEngine(t)
	room, _ := startedGame(t, engine, sched, "Ada", "Ben")

	seen := make(map[string]int)
	for number := 1; number <= room.RoundsTotal; number++ {
		round := currentRound(t, engine, room.ID)
		seen[round.QuestionID]++
		for i := 0; i < 4; i++ {
			agePhase(t, engine, round.ID)
			engine.Transition(round.ID)
		}
		sched.FireAll()
	}
	for questionID, count := range seen {
		assert.Equal(t, 1, count, "question %s repeated", questionID)
	}
}

package game

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"promptclash/internal/config"

	"github.com/stretchr/testify/require"
)

// fakeScheduler queues jobs without running them so tests control
// exactly when and in what order timers fire.
type fakeScheduler struct {
	mu   sync.Mutex
	seq  int
	jobs map[string]fakeJob
}

type fakeJob struct {
	at time.Time
	fn func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{jobs: make(map[string]fakeJob)}
}

func (s *fakeScheduler) ScheduleAt(at time.Time, fn func()) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	handle := fmt.Sprintf("job-%d", s.seq)
	s.jobs[handle] = fakeJob{at: at, fn: fn}
	return handle
}

func (s *fakeScheduler) ScheduleAfter(delay time.Duration, fn func()) string {
	return s.ScheduleAt(time.Now().UTC().Add(delay), fn)
}

func (s *fakeScheduler) Cancel(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, handle)
}

func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// FireAll pops every pending job and runs them in schedule order. Jobs
// queued by the fired jobs themselves stay pending.
func (s *fakeScheduler) FireAll() int {
	s.mu.Lock()
	popped := make([]fakeJob, 0, len(s.jobs))
	for handle, job := range s.jobs {
		popped = append(popped, job)
		delete(s.jobs, handle)
	}
	s.mu.Unlock()
	sort.Slice(popped, func(i, j int) bool { return popped[i].at.Before(popped[j].at) })
	for _, job := range popped {
		job.fn()
	}
	return len(popped)
}

// FireNext pops and runs only the earliest pending job, leaving
// longer-dated timers armed.
func (s *fakeScheduler) FireNext() bool {
	s.mu.Lock()
	var bestHandle string
	var best fakeJob
	for handle, job := range s.jobs {
		if bestHandle == "" || job.at.Before(best.at) {
			bestHandle, best = handle, job
		}
	}
	if bestHandle == "" {
		s.mu.Unlock()
		return false
	}
	delete(s.jobs, bestHandle)
	s.mu.Unlock()
	best.fn()
	return true
}

// stubGenerator records dispatched batches; tests feed results back
// through the engine's progress handler by hand.
type stubGenerator struct {
	mu      sync.Mutex
	err     error
	batches [][]*Prompt
}

func (g *stubGenerator) GenerateBatch(_ context.Context, _ *Round, prompts []*Prompt) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.batches = append(g.batches, prompts)
	return nil
}

func (g *stubGenerator) batchCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.batches)
}

func newTestEngine(t *testing.T) (*Engine, *fakeScheduler, *stubGenerator) {
	t.Helper()
	sched := newFakeScheduler()
	gen := &stubGenerator{}
	engine := NewEngine(NewStore(), sched, gen, nil, config.Default(), nil)
	return engine, sched, gen
}

// agePhase rewinds the round's deadline so the current phase looks old
// enough to clear the minimum-dwell duplicate guard.
func agePhase(t *testing.T, engine *Engine, roundID string) {
	t.Helper()
	_, err := engine.store.UpdateRound(roundID, func(round *Round) error {
		round.PhaseEndTime = round.PhaseEndTime.Add(-time.Second)
		return nil
	})
	require.NoError(t, err)
}

// startedGame spins up a room with the given players, starts the game,
// and runs the scheduled initialization.
func startedGame(t *testing.T, engine *Engine, sched *fakeScheduler, names ...string) (*Room, []*Player) {
	t.Helper()
	room := engine.CreateRoom(0, 0, false)
	players := make([]*Player, 0, len(names))
	for i, name := range names {
		player, err := engine.JoinRoom(room.ID, fmt.Sprintf("user-%d", i+1), name)
		require.NoError(t, err)
		players = append(players, player)
	}
	require.NoError(t, engine.StartGame(room.ID, players[0].ID))
	sched.FireAll()
	return room, players
}

func currentRound(t *testing.T, engine *Engine, roomID string) *Round {
	t.Helper()
	round, ok := engine.store.CurrentRound(roomID)
	require.True(t, ok, "expected an active round")
	return round
}

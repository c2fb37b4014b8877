package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler is the delayed-job facility the engine depends on. Handles
// are opaque strings; Cancel of an already-fired or unknown handle is a
// no-op. Callbacks run asynchronously, not on the caller's goroutine.
type Scheduler interface {
	ScheduleAt(at time.Time, fn func()) string
	ScheduleAfter(delay time.Duration, fn func()) string
	Cancel(handle string)
}

// ClockScheduler runs scheduled callbacks on wall-clock timers.
type ClockScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewClockScheduler() *ClockScheduler {
	return &ClockScheduler{timers: make(map[string]*time.Timer)}
}

func (s *ClockScheduler) ScheduleAt(at time.Time, fn func()) string {
	return s.ScheduleAfter(time.Until(at), fn)
}

func (s *ClockScheduler) ScheduleAfter(delay time.Duration, fn func()) string {
	if delay < 0 {
		delay = 0
	}
	handle := uuid.NewString()
	s.mu.Lock()
	s.timers[handle] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, handle)
		s.mu.Unlock()
		fn()
	})
	s.mu.Unlock()
	return handle
}

func (s *ClockScheduler) Cancel(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[handle]; ok {
		timer.Stop()
		delete(s.timers, handle)
	}
}

// Stop cancels every pending timer. Used on shutdown.
func (s *ClockScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}
}

package timer

import (
	"sync"
	"time"
)

// Scheduler schedules one-shot callbacks. The system implementation delegates
// to time.AfterFunc; tests substitute a Fake driven by simulated time.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Handle is a pending callback. Stop reports whether the callback was
// cancelled before it fired.
type Handle interface {
	Stop() bool
}

type systemScheduler struct{}

type systemHandle struct {
	t *time.Timer
}

func (h systemHandle) Stop() bool {
	return h.t.Stop()
}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	return systemHandle{t: time.AfterFunc(d, fn)}
}

// System returns the wall-clock scheduler.
func System() Scheduler {
	return systemScheduler{}
}

// Slot holds at most one pending callback per concern. Scheduling always
// cancels the previous callback first, so a concern can never have two
// timers in flight.
type Slot struct {
	sched Scheduler

	mu     sync.Mutex
	handle Handle
}

func NewSlot(sched Scheduler) *Slot {
	return &Slot{sched: sched}
}

// Schedule cancels any pending callback and schedules fn after d.
func (s *Slot) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.handle.Stop()
	}
	s.handle = s.sched.AfterFunc(d, fn)
}

// Cancel stops the pending callback, if any.
func (s *Slot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

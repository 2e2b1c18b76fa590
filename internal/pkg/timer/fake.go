package timer

import (
	"sort"
	"sync"
	"time"
)

// Fake is a Scheduler driven by simulated time. Advance moves the simulated
// clock forward and fires due callbacks in schedule order; callbacks may
// schedule further timers, which fire within the same Advance if they come
// due inside the advanced window.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*fakeHandle
}

type fakeHandle struct {
	fake    *Fake
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	h := &fakeHandle{
		fake: f,
		at:   f.now + d,
		seq:  f.seq,
		fn:   fn,
	}
	f.seq++
	f.pending = append(f.pending, h)
	return h
}

func (h *fakeHandle) Stop() bool {
	h.fake.mu.Lock()
	defer h.fake.mu.Unlock()

	if h.stopped || h.fired {
		return false
	}
	h.stopped = true
	return true
}

// Advance moves simulated time forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d

	for {
		h := f.nextDueLocked(target)
		if h == nil {
			break
		}
		h.fired = true
		f.now = h.at
		fn := h.fn
		// Release the lock while firing: the callback may schedule or stop
		// other timers on this Fake.
		f.mu.Unlock()
		fn()
		f.mu.Lock()
	}

	f.now = target
	f.mu.Unlock()
}

// Pending returns the number of live, unfired timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, h := range f.pending {
		if !h.stopped && !h.fired {
			n++
		}
	}
	return n
}

func (f *Fake) nextDueLocked(target time.Duration) *fakeHandle {
	live := f.pending[:0]
	for _, h := range f.pending {
		if !h.stopped && !h.fired {
			live = append(live, h)
		}
	}
	f.pending = live

	sort.SliceStable(f.pending, func(i, j int) bool {
		if f.pending[i].at != f.pending[j].at {
			return f.pending[i].at < f.pending[j].at
		}
		return f.pending[i].seq < f.pending[j].seq
	})

	if len(f.pending) == 0 || f.pending[0].at > target {
		return nil
	}
	return f.pending[0]
}

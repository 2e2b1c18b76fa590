package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a cancellable periodic job with an explicit start/stop lifecycle.
// Start runs the function immediately and then on every tick; Stop cancels
// the tick loop and waits for an in-flight run to drain. A Task may be
// started and stopped repeatedly, matching a view being mounted and
// unmounted.
type Task struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTask creates a periodic task. The function is not run until Start.
func NewTask(name string, interval time.Duration, fn func(ctx context.Context) error) *Task {
	return &Task{
		name:     name,
		interval: interval,
		fn:       fn,
	}
}

// Start begins the tick loop. Calling Start on a running task is a no-op.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.wg.Add(1)
	go t.run(ctx)

	slog.Debug("Poll task started", "name", t.name, "interval", t.interval)
}

// Stop cancels the tick loop and waits for the current run to finish.
// Calling Stop on a stopped task is a no-op.
func (t *Task) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	t.wg.Wait()
	slog.Debug("Poll task stopped", "name", t.name)
}

// Running reports whether the task is currently started.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Task) run(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	// Run immediately on start
	t.execute(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.execute(ctx)
		}
	}
}

func (t *Task) execute(ctx context.Context) {
	start := time.Now()
	if err := t.fn(ctx); err != nil {
		slog.Error("Poll task failed", "name", t.name, "error", err, "duration", time.Since(start))
	}
}

package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_FiresInScheduleOrder(t *testing.T) {
	f := NewFake()

	var order []string
	f.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
	f.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })

	f.Advance(30 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 0, f.Pending())
}

func TestFake_StoppedTimerDoesNotFire(t *testing.T) {
	f := NewFake()

	fired := false
	h := f.AfterFunc(10*time.Millisecond, func() { fired = true })

	assert.True(t, h.Stop())
	f.Advance(time.Minute)
	assert.False(t, fired)
	assert.False(t, h.Stop())
}

func TestFake_CallbackMaySchedule(t *testing.T) {
	f := NewFake()

	var order []string
	f.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "first")
		f.AfterFunc(5*time.Millisecond, func() { order = append(order, "second") })
	})

	f.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSlot_ScheduleReplacesPending(t *testing.T) {
	f := NewFake()
	slot := NewSlot(f)

	var fired []string
	slot.Schedule(10*time.Millisecond, func() { fired = append(fired, "old") })
	slot.Schedule(10*time.Millisecond, func() { fired = append(fired, "new") })

	f.Advance(time.Minute)
	assert.Equal(t, []string{"new"}, fired)
}

func TestSlot_Cancel(t *testing.T) {
	f := NewFake()
	slot := NewSlot(f)

	fired := false
	slot.Schedule(10*time.Millisecond, func() { fired = true })
	slot.Cancel()

	f.Advance(time.Minute)
	assert.False(t, fired)

	// Cancel with nothing pending is a no-op.
	slot.Cancel()
}

func TestSystemScheduler_Fires(t *testing.T) {
	done := make(chan struct{})
	System().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

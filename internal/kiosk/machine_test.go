package kiosk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesheet-offline/timeclock-client-go/internal/config"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/auth"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/timer"
)

type fakeClockAPI struct {
	mu    sync.Mutex
	pins  []string
	resp  auth.ClockResponse
	err   error
	block chan struct{}
}

func (f *fakeClockAPI) KioskLogin(ctx context.Context, pin string) (auth.ClockResponse, error) {
	f.mu.Lock()
	f.pins = append(f.pins, pin)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resp, f.err
}

func (f *fakeClockAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.pins...)
}

func testConfig() config.KioskConfig {
	return config.KioskConfig{
		FeedbackWindow: 4 * time.Second,
		FadeWindow:     300 * time.Millisecond,
		ClockTick:      time.Second,
		StatusInterval: 30 * time.Second,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMachine(api ClockAPI) (*Machine, *timer.Fake) {
	fake := timer.NewFake()
	m := NewMachine(api, fake, testLogger(), testConfig())
	return m, fake
}

func typePin(m *Machine, pin string) {
	for _, d := range pin {
		m.Press(d)
	}
}

func waitForPhase(t *testing.T, m *Machine, phase Phase) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.Snapshot().Phase == phase
	}, time.Second, time.Millisecond)
}

func TestMachine_InitialState(t *testing.T) {
	m, _ := newTestMachine(&fakeClockAPI{})
	defer m.Close()

	v := m.Snapshot()
	assert.Equal(t, PhaseIdle, v.Phase)
	assert.Empty(t, v.Pin)
	assert.Equal(t, DefaultMessage, v.Message.Text)
	assert.Equal(t, KindInfo, v.Message.Kind)
	assert.True(t, v.Message.Visible)
}

func TestMachine_PinEntry(t *testing.T) {
	m, _ := newTestMachine(&fakeClockAPI{})
	defer m.Close()

	typePin(m, "123")
	assert.Equal(t, "123", m.Snapshot().Pin)
	assert.Equal(t, "●●●", m.Snapshot().Masked)

	// Non-digits are ignored.
	m.Press('a')
	m.Press('-')
	assert.Equal(t, "123", m.Snapshot().Pin)

	// The buffer caps at six digits.
	typePin(m, "456789")
	assert.Equal(t, "123456", m.Snapshot().Pin)

	m.Delete()
	assert.Equal(t, "12345", m.Snapshot().Pin)

	m.Clear()
	assert.Empty(t, m.Snapshot().Pin)

	// Delete on an empty buffer is a no-op.
	m.Delete()
	assert.Empty(t, m.Snapshot().Pin)
}

func TestMachine_SubmitEmptyPinIsNoOp(t *testing.T) {
	api := &fakeClockAPI{}
	m, _ := newTestMachine(api)
	defer m.Close()

	m.Submit()

	assert.Equal(t, PhaseIdle, m.Snapshot().Phase)
	assert.Empty(t, api.calls())
}

func TestMachine_SubmitSuccess(t *testing.T) {
	api := &fakeClockAPI{resp: auth.ClockResponse{Message: "Clocked in successfully. Welcome!"}}
	m, _ := newTestMachine(api)
	defer m.Close()

	typePin(m, "1234")
	m.Submit()
	waitForPhase(t, m, PhaseFeedback)

	v := m.Snapshot()
	assert.Empty(t, v.Pin)
	assert.Equal(t, "Clocked in successfully. Welcome!", v.Message.Text)
	assert.Equal(t, KindSuccess, v.Message.Kind)
	assert.True(t, v.Message.Visible)
	assert.Equal(t, []string{"1234"}, api.calls())
}

func TestMachine_SubmitFailure(t *testing.T) {
	api := &fakeClockAPI{err: errors.New("Invalid credentials provided")}
	m, _ := newTestMachine(api)
	defer m.Close()

	typePin(m, "0000")
	m.Submit()
	waitForPhase(t, m, PhaseFeedback)

	v := m.Snapshot()
	assert.Empty(t, v.Pin, "the buffer clears on failure too")
	assert.Equal(t, "Invalid credentials provided", v.Message.Text)
	assert.Equal(t, KindError, v.Message.Kind)
}

func TestMachine_InputDroppedWhileSubmitting(t *testing.T) {
	api := &fakeClockAPI{block: make(chan struct{})}
	m, _ := newTestMachine(api)
	defer m.Close()

	typePin(m, "1234")
	m.Submit()
	waitForPhase(t, m, PhaseSubmitting)

	assert.Equal(t, processingMessage, m.Snapshot().Message.Text)

	// Keypad input during the in-flight call is dropped, not queued.
	m.Press('9')
	m.Delete()
	m.Clear()
	assert.Equal(t, "1234", m.Snapshot().Pin)

	// A second submit does not start a second call.
	m.Submit()
	assert.Equal(t, []string{"1234"}, api.calls())

	close(api.block)
	waitForPhase(t, m, PhaseFeedback)
	assert.Equal(t, []string{"1234"}, api.calls())
}

func TestMachine_FeedbackExpiry(t *testing.T) {
	api := &fakeClockAPI{resp: auth.ClockResponse{Message: "Clocked out. Goodbye!"}}
	m, fake := newTestMachine(api)
	defer m.Close()

	typePin(m, "1234")
	m.Submit()
	waitForPhase(t, m, PhaseFeedback)

	// Just short of the visibility window the message is still shown.
	fake.Advance(4*time.Second - time.Millisecond)
	assert.True(t, m.Snapshot().Message.Visible)

	// At the window's edge the message hides but the text lingers for the
	// fade.
	fake.Advance(time.Millisecond)
	v := m.Snapshot()
	assert.False(t, v.Message.Visible)
	assert.Equal(t, "Clocked out. Goodbye!", v.Message.Text)
	assert.Equal(t, PhaseFeedback, v.Phase)

	// After the fade the default info text is back.
	fake.Advance(300 * time.Millisecond)
	v = m.Snapshot()
	assert.Equal(t, PhaseIdle, v.Phase)
	assert.Equal(t, DefaultMessage, v.Message.Text)
	assert.Equal(t, KindInfo, v.Message.Kind)
	assert.True(t, v.Message.Visible)
}

func TestMachine_NewSubmitPreemptsPendingReset(t *testing.T) {
	api := &fakeClockAPI{resp: auth.ClockResponse{Message: "Clocked in successfully. Welcome!"}}
	m, fake := newTestMachine(api)
	defer m.Close()

	typePin(m, "1234")
	m.Submit()
	waitForPhase(t, m, PhaseFeedback)
	require.Equal(t, 1, fake.Pending())

	// A fresh submission while feedback is up cancels the expiry timer.
	api.mu.Lock()
	api.block = make(chan struct{})
	api.mu.Unlock()

	typePin(m, "5678")
	m.Submit()
	waitForPhase(t, m, PhaseSubmitting)
	assert.Equal(t, 0, fake.Pending())

	// The old window elapsing changes nothing while the call is in flight.
	fake.Advance(10 * time.Second)
	assert.Equal(t, processingMessage, m.Snapshot().Message.Text)

	close(api.block)
	waitForPhase(t, m, PhaseFeedback)
	assert.Equal(t, "Clocked in successfully. Welcome!", m.Snapshot().Message.Text)

	// The new feedback gets its own full window.
	fake.Advance(4 * time.Second)
	assert.False(t, m.Snapshot().Message.Visible)
	fake.Advance(300 * time.Millisecond)
	assert.Equal(t, PhaseIdle, m.Snapshot().Phase)
}

func TestMachine_HandleKey(t *testing.T) {
	api := &fakeClockAPI{resp: auth.ClockResponse{Message: "ok"}}
	m, _ := newTestMachine(api)
	defer m.Close()

	m.HandleKey('1')
	m.HandleKey('2')
	m.HandleKey('3')
	assert.Equal(t, "123", m.Snapshot().Pin)

	m.HandleKey(KeyBackspace)
	assert.Equal(t, "12", m.Snapshot().Pin)

	m.HandleKey(KeyEscape)
	assert.Empty(t, m.Snapshot().Pin)

	// Unmapped keys do nothing.
	m.HandleKey('x')
	assert.Empty(t, m.Snapshot().Pin)

	m.HandleKey('7')
	m.HandleKey(KeyEnter)
	waitForPhase(t, m, PhaseFeedback)
	assert.Equal(t, []string{"7"}, api.calls())
}

func TestMachine_CloseCancelsEverything(t *testing.T) {
	api := &fakeClockAPI{resp: auth.ClockResponse{Message: "ok"}}
	m, fake := newTestMachine(api)
	m.Start()

	typePin(m, "1234")
	m.Submit()
	waitForPhase(t, m, PhaseFeedback)
	require.Equal(t, 1, fake.Pending())

	m.Close()
	assert.Equal(t, 0, fake.Pending())
	assert.False(t, m.ticker.Running())

	// A resolve landing after teardown is discarded.
	m.Submit()
	assert.Equal(t, []string{"1234"}, api.calls())
}

func TestMachine_ClockTickerUpdatesNow(t *testing.T) {
	m, _ := newTestMachine(&fakeClockAPI{})
	defer m.Close()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	now := base
	m.nowFn = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	m.Start()
	require.Eventually(t, func() bool {
		return m.Snapshot().Now.Equal(base)
	}, time.Second, time.Millisecond)
}

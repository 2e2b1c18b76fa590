// Package kiosk implements the unauthenticated PIN-entry surface as an
// explicit state machine: Idle, Submitting, Feedback. Modelling the phases
// as a tagged state (rather than isLoading/message booleans) makes illegal
// combinations, like an in-flight submit with a stale feedback message,
// unrepresentable.
package kiosk

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/config"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/auth"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/poll"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/timer"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/validator"
)

const (
	// MaxPinLength caps the PIN buffer; further digits are discarded.
	MaxPinLength = 6

	// DefaultMessage is the resting info text.
	DefaultMessage = "Enter your unique PIN to clock in or out."

	processingMessage = "Processing..."
)

// Phase is the machine's tagged state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseFeedback
)

// MessageKind classifies the feedback message.
type MessageKind int

const (
	KindInfo MessageKind = iota
	KindSuccess
	KindError
)

// Feedback is the single live message. Visible turns false at fade-start,
// ahead of the reset back to the default info text.
type Feedback struct {
	Text    string
	Kind    MessageKind
	Visible bool
}

// Keyboard keys mapped onto keypad transitions.
const (
	KeyEnter     = '\r'
	KeyBackspace = '\b'
	KeyDelete    = '\x7f'
	KeyEscape    = '\x1b'
)

// ClockAPI is the one call the kiosk makes.
type ClockAPI interface {
	KioskLogin(ctx context.Context, pin string) (auth.ClockResponse, error)
}

// View is a render snapshot.
type View struct {
	Phase   Phase
	Pin     string
	Masked  string
	Message Feedback
	Now     time.Time
}

// Machine drives PIN entry, submission and timed feedback. All transitions
// are serialized under one lock; the busy phase gates new submissions, so at
// most one clock call is ever in flight.
type Machine struct {
	api    ClockAPI
	logger *slog.Logger

	feedbackWindow time.Duration
	fadeWindow     time.Duration

	// One scheduled timeout per concern, always cancelled before
	// rescheduling and on teardown.
	hideSlot  *timer.Slot
	resetSlot *timer.Slot

	ticker *poll.Task
	nowFn  func() time.Time

	mu      sync.Mutex
	phase   Phase
	pin     string
	message Feedback
	now     time.Time
	closed  bool
}

func NewMachine(api ClockAPI, sched timer.Scheduler, logger *slog.Logger, cfg config.KioskConfig) *Machine {
	m := &Machine{
		api:            api,
		logger:         logger,
		feedbackWindow: cfg.FeedbackWindow,
		fadeWindow:     cfg.FadeWindow,
		hideSlot:       timer.NewSlot(sched),
		resetSlot:      timer.NewSlot(sched),
		nowFn:          time.Now,
		phase:          PhaseIdle,
		message:        Feedback{Text: DefaultMessage, Kind: KindInfo, Visible: true},
	}
	m.now = m.nowFn()
	m.ticker = poll.NewTask("kiosk-clock", cfg.ClockTick, func(ctx context.Context) error {
		m.mu.Lock()
		m.now = m.nowFn()
		m.mu.Unlock()
		return nil
	})
	return m
}

// Start begins the displayed-clock ticker. It runs independently of the PIN
// machine.
func (m *Machine) Start() {
	m.ticker.Start()
}

// Close tears the machine down: the ticker stops and every pending timeout
// is cancelled.
func (m *Machine) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.ticker.Stop()
	m.hideSlot.Cancel()
	m.resetSlot.Cancel()
}

// Press appends a digit. Input while submitting is dropped, not queued, and
// the buffer never exceeds MaxPinLength.
func (m *Machine) Press(digit rune) {
	if !validator.IsDigit(digit) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseSubmitting {
		return
	}
	if len(m.pin) < MaxPinLength {
		m.pin += string(digit)
	}
}

// Delete removes the last digit; a no-op while submitting.
func (m *Machine) Delete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseSubmitting {
		return
	}
	if len(m.pin) > 0 {
		m.pin = m.pin[:len(m.pin)-1]
	}
}

// Clear empties the buffer; a no-op while submitting.
func (m *Machine) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseSubmitting {
		return
	}
	m.pin = ""
}

// Submit issues one clock call. With an empty buffer or a call already in
// flight it is a no-op.
func (m *Machine) Submit() {
	m.mu.Lock()
	if m.pin == "" || m.phase == PhaseSubmitting || m.closed {
		m.mu.Unlock()
		return
	}
	pin := m.pin
	m.phase = PhaseSubmitting
	m.message = Feedback{Text: processingMessage, Kind: KindInfo, Visible: true}
	m.mu.Unlock()

	// A new submission pre-empts any pending auto-reset.
	m.hideSlot.Cancel()
	m.resetSlot.Cancel()

	go func() {
		resp, err := m.api.KioskLogin(context.Background(), pin)
		m.finish(resp, err)
	}()
}

// HandleKey maps physical keyboard input 1:1 onto the keypad transitions.
func (m *Machine) HandleKey(key rune) {
	switch {
	case validator.IsDigit(key):
		m.Press(key)
	case key == KeyEnter || key == '\n':
		m.Submit()
	case key == KeyBackspace || key == KeyDelete:
		m.Delete()
	case key == KeyEscape:
		m.Clear()
	}
}

// Snapshot returns the current render state.
func (m *Machine) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return View{
		Phase:   m.phase,
		Pin:     m.pin,
		Masked:  strings.Repeat("●", len(m.pin)),
		Message: m.message,
		Now:     m.now,
	}
}

// finish resolves a submission: the buffer clears regardless of outcome and
// exactly one feedback message goes live, with its auto-expiry scheduled.
func (m *Machine) finish(resp auth.ClockResponse, err error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	m.pin = ""
	m.phase = PhaseFeedback
	if err != nil {
		m.message = Feedback{Text: err.Error(), Kind: KindError, Visible: true}
		m.logger.Info("Clock action rejected", "error", err)
	} else {
		m.message = Feedback{Text: resp.Message, Kind: KindSuccess, Visible: true}
		m.logger.Info("Clock action accepted")
	}
	m.mu.Unlock()

	m.hideSlot.Schedule(m.feedbackWindow, m.fadeStart)
}

// fadeStart hides the message, then the shorter reset window restores the
// default info text.
func (m *Machine) fadeStart() {
	m.mu.Lock()
	if m.closed || m.phase != PhaseFeedback {
		m.mu.Unlock()
		return
	}
	m.message.Visible = false
	m.mu.Unlock()

	m.resetSlot.Schedule(m.fadeWindow, m.reset)
}

func (m *Machine) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.phase != PhaseFeedback {
		return
	}
	m.phase = PhaseIdle
	m.message = Feedback{Text: DefaultMessage, Kind: KindInfo, Visible: true}
}

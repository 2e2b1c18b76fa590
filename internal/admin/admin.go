// Package admin implements the authenticated workspace: one selected view at
// a time over shared live-status data, with mutation workflows gated behind
// confirmation dialogs.
package admin

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/api"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/clock"
	"github.com/timesheet-offline/timeclock-client-go/internal/nav"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/notify"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/poll"
	"github.com/timesheet-offline/timeclock-client-go/internal/session"
)

// AuditPageSize is the fixed audit-log page size.
const AuditPageSize = 15

// ViewKind selects one of the five mutually exclusive workspace views.
type ViewKind int

const (
	ViewLiveStatus ViewKind = iota
	ViewTimesheets
	ViewUserManagement
	ViewAuditLogs
	ViewExports
)

func (v ViewKind) String() string {
	switch v {
	case ViewTimesheets:
		return "timesheets"
	case ViewUserManagement:
		return "users"
	case ViewAuditLogs:
		return "audit-logs"
	case ViewExports:
		return "exports"
	default:
		return "live-status"
	}
}

// Dialoger is the host environment's modal primitives. Confirm blocks for a
// yes/no answer; Prompt blocks for a value, ok false meaning cancelled.
type Dialoger interface {
	Confirm(message string) bool
	Prompt(message string) (string, bool)
}

// Workspace composes the admin views. Live status is shared state with a
// workspace-lifetime poller; the other views are created fresh on each
// switch, so a revisit always re-fetches.
type Workspace struct {
	client  *api.Client
	session *session.Store
	nav     *nav.Controller
	dialogs Dialoger
	alerter api.Alerter
	logger  *slog.Logger

	usersChanged *notify.Hub[struct{}]
	statusPoll   *poll.Task
	unsubscribe  func()

	// At most one dialog may be open; a second request aborts instead of
	// stacking.
	dialogMu   sync.Mutex
	dialogOpen bool

	mu        sync.Mutex
	active    ViewKind
	statuses  []clock.UserStatus
	statusErr string

	sheets  *TimesheetsView
	logs    *AuditLogsView
	users   *UserManagementView
	exports *ExportsView
}

func NewWorkspace(client *api.Client, sess *session.Store, navc *nav.Controller, dialogs Dialoger, alerter api.Alerter, logger *slog.Logger, statusInterval time.Duration) *Workspace {
	w := &Workspace{
		client:       client,
		session:      sess,
		nav:          navc,
		dialogs:      dialogs,
		alerter:      alerter,
		logger:       logger,
		usersChanged: notify.NewHub[struct{}](),
	}
	w.statusPoll = poll.NewTask("live-status", statusInterval, w.refreshStatuses)
	return w
}

// Mount activates the workspace on the live-status view and starts the
// status poller. User mutations elsewhere in the workspace republish into
// the shared status data through the users-changed event.
func (w *Workspace) Mount() {
	w.mu.Lock()
	w.active = ViewLiveStatus
	w.mu.Unlock()

	w.statusPoll.Start()
	w.unsubscribe = w.usersChanged.Subscribe(func(struct{}) {
		_ = w.refreshStatuses(context.Background())
	})
}

// Unmount stops the status poller and drops every view. Leaving the poller
// running against a dead workspace is a bug, not a detail.
func (w *Workspace) Unmount() {
	w.statusPoll.Stop()
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}

	w.mu.Lock()
	w.sheets, w.logs, w.users, w.exports = nil, nil, nil, nil
	w.mu.Unlock()
}

// SelectView switches the active view. The deactivated view is discarded, so
// in-flight loading state never survives a switch.
func (w *Workspace) SelectView(ctx context.Context, kind ViewKind) {
	w.mu.Lock()
	w.active = kind
	w.sheets, w.logs, w.users, w.exports = nil, nil, nil, nil
	w.mu.Unlock()

	switch kind {
	case ViewLiveStatus:
		_ = w.refreshStatuses(ctx)
	case ViewTimesheets:
		v := newTimesheetsView(w)
		v.Refresh(ctx)
		w.mu.Lock()
		w.sheets = v
		w.mu.Unlock()
	case ViewUserManagement:
		v := newUserManagementView(w)
		v.Refresh(ctx)
		w.mu.Lock()
		w.users = v
		w.mu.Unlock()
	case ViewAuditLogs:
		v := newAuditLogsView(w)
		v.fetch(ctx)
		w.mu.Lock()
		w.logs = v
		w.mu.Unlock()
	case ViewExports:
		w.mu.Lock()
		w.exports = newExportsView(w)
		w.mu.Unlock()
	}
}

// Active returns the selected view kind.
func (w *Workspace) Active() ViewKind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Statuses returns the shared live-status snapshot and any inline fetch
// error.
func (w *Workspace) Statuses() ([]clock.UserStatus, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]clock.UserStatus(nil), w.statuses...), w.statusErr
}

// ClockedIn returns only the employees currently clocked in.
func (w *Workspace) ClockedIn() []clock.UserStatus {
	statuses, _ := w.Statuses()
	return clock.FilterClockedIn(statuses)
}

// Timesheets returns the mounted timesheets view, nil when another view is
// active. The other view accessors behave the same way.
func (w *Workspace) Timesheets() *TimesheetsView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sheets
}

func (w *Workspace) AuditLogs() *AuditLogsView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.logs
}

func (w *Workspace) Users() *UserManagementView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.users
}

func (w *Workspace) Exports() *ExportsView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.exports
}

// Logout clears the session and returns to the kiosk.
func (w *Workspace) Logout() {
	w.session.Logout()
	w.nav.Navigate(nav.LocationRoot)
}

// refreshStatuses is both the poll body and the users-changed handler. An
// auth failure here surfaces inline like any other error; it does not force
// a logout.
func (w *Workspace) refreshStatuses(ctx context.Context) error {
	statuses, err := w.client.UserStatuses(ctx, w.session.Token())

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.statusErr = err.Error()
		return err
	}
	w.statuses = statuses
	w.statusErr = ""
	return nil
}

// beginDialog claims the single dialog slot; false means one is already
// open and the caller must abort.
func (w *Workspace) beginDialog() bool {
	w.dialogMu.Lock()
	defer w.dialogMu.Unlock()
	if w.dialogOpen {
		return false
	}
	w.dialogOpen = true
	return true
}

func (w *Workspace) endDialog() {
	w.dialogMu.Lock()
	w.dialogOpen = false
	w.dialogMu.Unlock()
}

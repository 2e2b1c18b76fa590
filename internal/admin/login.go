package admin

import (
	"context"
	"log/slog"
	"sync"

	"github.com/timesheet-offline/timeclock-client-go/internal/api"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/auth"
	"github.com/timesheet-offline/timeclock-client-go/internal/nav"
	"github.com/timesheet-offline/timeclock-client-go/internal/session"
)

// Login drives the admin login form: client-side validation before any
// network call, an in-flight gate against double submission, inline errors.
type Login struct {
	client  *api.Client
	session *session.Store
	nav     *nav.Controller
	logger  *slog.Logger

	mu         sync.Mutex
	submitting bool
	errMsg     string
}

func NewLogin(client *api.Client, sess *session.Store, navc *nav.Controller, logger *slog.Logger) *Login {
	return &Login{client: client, session: sess, nav: navc, logger: logger}
}

// Submit attempts the login. On success the session is established and
// navigation moves to the dashboard; on failure the error shows inline and
// the form stays up.
func (l *Login) Submit(ctx context.Context, email, password string) {
	l.mu.Lock()
	if l.submitting {
		l.mu.Unlock()
		return
	}

	req := auth.AdminLoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		l.errMsg = err.Error()
		l.mu.Unlock()
		return
	}
	l.submitting = true
	l.errMsg = ""
	l.mu.Unlock()

	resp, err := l.client.AdminLogin(ctx, req)

	l.mu.Lock()
	l.submitting = false
	if err != nil {
		l.errMsg = err.Error()
		l.mu.Unlock()
		l.logger.Info("Admin login rejected", "error", err)
		return
	}
	l.mu.Unlock()

	l.session.Login(resp.Token)
	l.nav.Navigate(nav.LocationDashboard)
	l.logger.Info("Admin login accepted", "email", resp.Email)
}

// Err returns the inline error, empty when none.
func (l *Login) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Submitting reports whether a login call is in flight.
func (l *Login) Submitting() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.submitting
}

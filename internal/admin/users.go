package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/timesheet-offline/timeclock-client-go/internal/domain/user"
)

// UserManagementView lists managed accounts and drives the mutation
// workflows. Delete and PIN reset never fire straight from a button press;
// each goes through the dialog slot first.
type UserManagementView struct {
	ws *Workspace

	mu        sync.Mutex
	users     []user.User
	errMsg    string
	createErr string
	creating  bool
}

func newUserManagementView(ws *Workspace) *UserManagementView {
	return &UserManagementView{ws: ws}
}

// List returns the current accounts and any inline fetch error.
func (v *UserManagementView) List() ([]user.User, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]user.User(nil), v.users...), v.errMsg
}

// CreateErr returns the inline error of the create form.
func (v *UserManagementView) CreateErr() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.createErr
}

// Refresh re-fetches the account list.
func (v *UserManagementView) Refresh(ctx context.Context) {
	users, err := v.ws.client.ListUsers(ctx, v.ws.session.Token())

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.errMsg = err.Error()
		return
	}
	v.users = users
	v.errMsg = ""
}

// Create submits the new-account form. While a submission is in flight the
// form accepts no second submission; validation failures never reach the
// network. Success refreshes the list and republishes the shared live
// status.
func (v *UserManagementView) Create(ctx context.Context, req user.CreateUserRequest) {
	v.mu.Lock()
	if v.creating {
		v.mu.Unlock()
		return
	}
	if err := req.Validate(); err != nil {
		v.createErr = err.Error()
		v.mu.Unlock()
		return
	}
	v.creating = true
	v.createErr = ""
	v.mu.Unlock()

	_, err := v.ws.client.CreateUser(ctx, v.ws.session.Token(), req)

	v.mu.Lock()
	v.creating = false
	if err != nil {
		v.createErr = err.Error()
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	v.Refresh(ctx)
	v.ws.usersChanged.Publish(struct{}{})
}

// Delete removes an account after an explicit confirmation. Cancelling the
// dialog issues no network call. Success refreshes the list and the shared
// live status; failure goes to the blocking alerter, since it lands after
// the dialog has closed.
func (v *UserManagementView) Delete(ctx context.Context, u user.User) {
	if !v.ws.beginDialog() {
		return
	}
	ok := v.ws.dialogs.Confirm(fmt.Sprintf("Are you sure you want to delete the user %s? This cannot be undone.", u.Email))
	v.ws.endDialog()
	if !ok {
		return
	}

	if err := v.ws.client.DeleteUser(ctx, v.ws.session.Token(), u.ID); err != nil {
		v.ws.alerter.Alert("Failed to delete user: " + err.Error())
		return
	}

	v.ws.logger.Info("User deleted", "email", u.Email)
	v.Refresh(ctx)
	v.ws.usersChanged.Publish(struct{}{})
}

// ResetPin sets a new credential after prompting for the value. Cancelling
// or submitting an empty value aborts without a network call.
func (v *UserManagementView) ResetPin(ctx context.Context, u user.User) {
	if !v.ws.beginDialog() {
		return
	}
	newPin, ok := v.ws.dialogs.Prompt(fmt.Sprintf("Enter a new PIN for %s:", u.Email))
	v.ws.endDialog()
	if !ok || newPin == "" {
		return
	}

	if err := v.ws.client.ResetPin(ctx, v.ws.session.Token(), u.ID, newPin); err != nil {
		v.ws.alerter.Alert("Failed to reset PIN: " + err.Error())
		return
	}

	v.ws.alerter.Alert(fmt.Sprintf("PIN for %s has been updated.", u.Email))
	v.Refresh(ctx)
}

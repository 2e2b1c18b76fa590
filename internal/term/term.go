// Package term is the terminal front end: a thin line-driven renderer over
// the kiosk machine, the login form and the admin workspace. All state lives
// in those controllers; this package only draws and dispatches input.
package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/admin"
	"github.com/timesheet-offline/timeclock-client-go/internal/api"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/timesheet"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/user"
	"github.com/timesheet-offline/timeclock-client-go/internal/kiosk"
	"github.com/timesheet-offline/timeclock-client-go/internal/nav"
	"github.com/timesheet-offline/timeclock-client-go/internal/session"
)

var errQuit = errors.New("quit")

// App wires the three surfaces to a line-based terminal.
type App struct {
	console *Console
	out     io.Writer
	logger  *slog.Logger

	nav       *nav.Controller
	session   *session.Store
	newKiosk  func() *kiosk.Machine
	login     *admin.Login
	workspace *admin.Workspace
}

// NewApp builds the front end. newKiosk is a factory: the kiosk machine is
// created on each mount of the kiosk surface and torn down on leave.
func NewApp(console *Console, navc *nav.Controller, sess *session.Store, newKiosk func() *kiosk.Machine, login *admin.Login, workspace *admin.Workspace, logger *slog.Logger) *App {
	return &App{
		console:   console,
		out:       console.out,
		logger:    logger,
		nav:       navc,
		session:   sess,
		newKiosk:  newKiosk,
		login:     login,
		workspace: workspace,
	}
}

// Run drives the surface loop until quit, EOF or context cancellation. The
// active surface is re-derived from navigation and session state on every
// pass, so a login or logout lands on the right surface immediately.
func (a *App) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var err error
		switch nav.Resolve(a.nav.CurrentLocation(), a.session.Authenticated()) {
		case nav.SurfaceKiosk:
			err = a.runKiosk(ctx)
		case nav.SurfaceLogin:
			err = a.runLogin(ctx)
		case nav.SurfaceAdmin:
			err = a.runAdmin(ctx)
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) readLine() (string, bool) {
	return a.console.ReadLine()
}

// runKiosk renders the PIN surface. A line of digits is fed through the
// keyboard path and submitted; "admin" jumps to the login route.
func (a *App) runKiosk(ctx context.Context) error {
	machine := a.newKiosk()
	machine.Start()
	defer machine.Close()

	for {
		v := machine.Snapshot()
		fmt.Fprintf(a.out, "\n%s\n", v.Now.Format("15:04:05"))
		if v.Message.Visible {
			fmt.Fprintln(a.out, v.Message.Text)
		}
		fmt.Fprintf(a.out, "PIN: %s\n> ", v.Masked)

		line, ok := a.readLine()
		if !ok {
			return errQuit
		}
		switch line {
		case "quit", "exit":
			return errQuit
		case "admin":
			a.nav.Navigate(nav.LocationAdmin)
			return nil
		}

		for _, r := range line {
			machine.HandleKey(r)
		}
		machine.HandleKey(kiosk.KeyEnter)
		a.waitForResolve(ctx, machine)
		if msg := machine.Snapshot().Message; msg.Visible {
			fmt.Fprintln(a.out, msg.Text)
		}
	}
}

// waitForResolve blocks until the in-flight clock call settles, bounded so a
// hung network call never wedges the render loop.
func (a *App) waitForResolve(ctx context.Context, machine *kiosk.Machine) {
	deadline := time.Now().Add(30 * time.Second)
	for machine.Snapshot().Phase == kiosk.PhaseSubmitting && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func (a *App) runLogin(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nAdmin login (blank email returns to the kiosk)")

	fmt.Fprint(a.out, "Email: ")
	email, ok := a.readLine()
	if !ok {
		return errQuit
	}
	if email == "" {
		a.nav.Navigate(nav.LocationRoot)
		return nil
	}

	fmt.Fprint(a.out, "Password: ")
	password, ok := a.readLine()
	if !ok {
		return errQuit
	}

	a.login.Submit(ctx, email, password)
	if msg := a.login.Err(); msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	return nil
}

func (a *App) runAdmin(ctx context.Context) error {
	a.workspace.Mount()
	defer a.workspace.Unmount()
	a.workspace.SelectView(ctx, admin.ViewLiveStatus)

	for {
		a.renderView()
		fmt.Fprintf(a.out, "[%s]> ", a.workspace.Active())

		line, ok := a.readLine()
		if !ok {
			return errQuit
		}
		if done, err := a.dispatchAdmin(ctx, line); done {
			return err
		}
	}
}

// dispatchAdmin handles one workspace command. done reports that the admin
// surface should be left.
func (a *App) dispatchAdmin(ctx context.Context, line string) (done bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true, errQuit
	case "logout":
		a.workspace.Logout()
		return true, nil
	case "status":
		a.workspace.SelectView(ctx, admin.ViewLiveStatus)
	case "timesheets":
		a.workspace.SelectView(ctx, admin.ViewTimesheets)
	case "users":
		a.workspace.SelectView(ctx, admin.ViewUserManagement)
	case "logs":
		a.workspace.SelectView(ctx, admin.ViewAuditLogs)
	case "exports":
		a.workspace.SelectView(ctx, admin.ViewExports)
	default:
		a.dispatchViewCommand(ctx, cmd, args)
	}
	return false, nil
}

func (a *App) dispatchViewCommand(ctx context.Context, cmd string, args []string) {
	switch a.workspace.Active() {
	case admin.ViewTimesheets:
		v := a.workspace.Timesheets()
		switch cmd {
		case "prev":
			v.ChangeWeek(ctx, -7)
		case "next":
			v.ChangeWeek(ctx, 7)
		case "download":
			v.DownloadWeek(ctx)
		}
	case admin.ViewAuditLogs:
		v := a.workspace.AuditLogs()
		switch cmd {
		case "prev":
			v.Prev(ctx)
		case "next":
			v.Next(ctx)
		}
	case admin.ViewUserManagement:
		a.dispatchUserCommand(ctx, cmd, args)
	case admin.ViewExports:
		v := a.workspace.Exports()
		switch cmd {
		case "range":
			if len(args) == 2 {
				v.SetRange(args[0], args[1])
			} else {
				fmt.Fprintln(a.out, "usage: range <start YYYY-MM-DD> <end YYYY-MM-DD>")
			}
		case "timesheets-csv":
			v.Export(ctx, api.ExportTimesheets)
		case "audit-csv":
			v.Export(ctx, api.ExportAuditLogs)
		}
	}
}

func (a *App) dispatchUserCommand(ctx context.Context, cmd string, args []string) {
	v := a.workspace.Users()
	switch cmd {
	case "add":
		if len(args) != 3 {
			fmt.Fprintln(a.out, "usage: add <email> <pin> <employee|admin>")
			return
		}
		role := user.RoleEmployee
		if args[2] == "admin" {
			role = user.RoleAdmin
		}
		v.Create(ctx, user.CreateUserRequest{Email: args[0], Pin: args[1], Role: role})
		if msg := v.CreateErr(); msg != "" {
			fmt.Fprintln(a.out, msg)
		}
	case "del", "pin":
		if len(args) != 1 {
			fmt.Fprintf(a.out, "usage: %s <id>\n", cmd)
			return
		}
		target, ok := a.findUser(v, args[0])
		if !ok {
			fmt.Fprintln(a.out, "No such user id")
			return
		}
		if cmd == "del" {
			v.Delete(ctx, target)
		} else {
			v.ResetPin(ctx, target)
		}
	}
}

func (a *App) findUser(v *admin.UserManagementView, rawID string) (user.User, bool) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return user.User{}, false
	}
	users, _ := v.List()
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}

func (a *App) renderView() {
	fmt.Fprintln(a.out)
	switch a.workspace.Active() {
	case admin.ViewLiveStatus:
		a.renderStatuses()
	case admin.ViewTimesheets:
		a.renderTimesheets()
	case admin.ViewAuditLogs:
		a.renderAuditLogs()
	case admin.ViewUserManagement:
		a.renderUsers()
	case admin.ViewExports:
		fmt.Fprintln(a.out, "Exports: range <start> <end>, then timesheets-csv or audit-csv")
		if msg := a.workspace.Exports().Err(); msg != "" {
			fmt.Fprintln(a.out, msg)
		}
	}
}

func (a *App) renderStatuses() {
	_, errMsg := a.workspace.Statuses()
	if errMsg != "" {
		fmt.Fprintln(a.out, errMsg)
		return
	}
	clockedIn := a.workspace.ClockedIn()
	fmt.Fprintf(a.out, "Currently clocked in: %d\n", len(clockedIn))
	for _, s := range clockedIn {
		line := "  " + s.Email
		if at, ok := s.LastAction(); ok {
			line += "  since " + at.Local().Format("15:04")
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) renderTimesheets() {
	v := a.workspace.Timesheets()
	rows, errMsg := v.Rows()
	if errMsg != "" {
		fmt.Fprintln(a.out, errMsg)
		return
	}

	weekStart := v.WeekStart()
	fmt.Fprintf(a.out, "Week of %s (prev/next/download)\n", weekStart.Format("Jan 2, 2006"))
	for _, row := range rows {
		fmt.Fprintf(a.out, "  %-30s", row.UserEmail)
		for _, day := range timesheet.WeekDays(weekStart) {
			fmt.Fprintf(a.out, " %5.1f", row.HoursOn(day))
		}
		fmt.Fprintf(a.out, " | %6.1f\n", row.TotalHours)
	}
}

func (a *App) renderAuditLogs() {
	v := a.workspace.AuditLogs()
	page, errMsg := v.Entries()
	if errMsg != "" {
		fmt.Fprintln(a.out, errMsg)
		return
	}

	fmt.Fprintf(a.out, "Audit log, page %d of %d\n", v.Page()+1, page.TotalPages)
	for _, e := range page.Content {
		when := e.Timestamp
		if t, ok := e.When(); ok {
			when = t.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(a.out, "  %s  %-12s %-8s %s\n", when, e.Action, e.Status, e.UserEmail)
	}
	fmt.Fprintf(a.out, "prev:%v next:%v\n", v.CanPrev(), v.CanNext())
}

func (a *App) renderUsers() {
	v := a.workspace.Users()
	users, errMsg := v.List()
	if errMsg != "" {
		fmt.Fprintln(a.out, errMsg)
		return
	}

	fmt.Fprintln(a.out, "Users (add/del/pin)")
	for _, u := range users {
		fmt.Fprintf(a.out, "  %4d  %-30s %s\n", u.ID, u.Email, u.Role.Display())
	}
}

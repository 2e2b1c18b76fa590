package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/domain/audit"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/auth"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/clock"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/timesheet"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/user"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/apitime"
)

// Export types, as they appear in the export URL path.
const (
	ExportTimesheets = "timesheets"
	ExportAuditLogs  = "audit-logs"
)

// KioskLogin performs one unauthenticated PIN clock action.
func (c *Client) KioskLogin(ctx context.Context, pin string) (auth.ClockResponse, error) {
	var resp auth.ClockResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/kiosk/login", "", auth.PinLoginRequest{Pin: pin}, &resp)
	return resp, err
}

// AdminLogin exchanges email/password for a bearer token.
func (c *Client) AdminLogin(ctx context.Context, req auth.AdminLoginRequest) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/admin/login", "", req, &resp)
	return resp, err
}

// UserStatuses fetches the live clock status of every user.
func (c *Client) UserStatuses(ctx context.Context, token string) ([]clock.UserStatus, error) {
	var resp []clock.UserStatus
	err := c.do(ctx, http.MethodGet, "/api/admin/users/statuses", token, nil, &resp)
	return resp, err
}

// Timesheets fetches the weekly timesheet rows for the week beginning at
// weekStart.
func (c *Client) Timesheets(ctx context.Context, token string, weekStart time.Time) ([]timesheet.WeeklyTimesheet, error) {
	query := url.Values{"weekStartDate": {apitime.FormatDate(weekStart)}}
	var resp []timesheet.WeeklyTimesheet
	err := c.do(ctx, http.MethodGet, "/api/admin/timesheets?"+query.Encode(), token, nil, &resp)
	return resp, err
}

// AuditLogs fetches one zero-based page of audit records.
func (c *Client) AuditLogs(ctx context.Context, token string, page, size int) (audit.LogPage, error) {
	query := url.Values{
		"page": {fmt.Sprintf("%d", page)},
		"size": {fmt.Sprintf("%d", size)},
	}
	var resp audit.LogPage
	err := c.do(ctx, http.MethodGet, "/api/admin/audit-logs?"+query.Encode(), token, nil, &resp)
	return resp, err
}

// ListUsers fetches all managed accounts.
func (c *Client) ListUsers(ctx context.Context, token string) ([]user.User, error) {
	var resp []user.User
	err := c.do(ctx, http.MethodGet, "/api/admin/users", token, nil, &resp)
	return resp, err
}

// CreateUser creates a new account.
func (c *Client) CreateUser(ctx context.Context, token string, req user.CreateUserRequest) (user.User, error) {
	var resp user.User
	err := c.do(ctx, http.MethodPost, "/api/admin/users", token, req, &resp)
	return resp, err
}

// ResetPin sets a new PIN or password for the given account.
func (c *Client) ResetPin(ctx context.Context, token string, id int64, newPin string) error {
	path := fmt.Sprintf("/api/admin/users/%d/reset-pin", id)
	return c.do(ctx, http.MethodPost, path, token, user.ResetPinRequest{NewPin: newPin}, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/api/admin/users/%d", id)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// ExportPath builds the CSV export URL for the given type and normalized
// date range.
func ExportPath(exportType string, start, end time.Time) string {
	query := url.Values{
		"startDate": {apitime.FormatQuery(start)},
		"endDate":   {apitime.FormatQuery(end)},
	}
	return fmt.Sprintf("/api/admin/%s/export?%s", exportType, query.Encode())
}

// ExportFilename builds the suggested filename for a CSV export.
func ExportFilename(exportType string, start, end time.Time) string {
	return fmt.Sprintf("%s_export_%s_to_%s.csv",
		exportType, apitime.FormatDate(start), apitime.FormatDate(end))
}

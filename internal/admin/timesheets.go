package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/api"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/timesheet"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/apitime"
)

// TimesheetsView browses weekly timesheets, one Monday-aligned week at a
// time.
type TimesheetsView struct {
	ws *Workspace

	mu        sync.Mutex
	weekStart time.Time
	rows      []timesheet.WeeklyTimesheet
	errMsg    string
}

func newTimesheetsView(ws *Workspace) *TimesheetsView {
	return &TimesheetsView{
		ws:        ws,
		weekStart: timesheet.MondayOf(time.Now()),
	}
}

// WeekStart returns the Monday the displayed week begins on.
func (v *TimesheetsView) WeekStart() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.weekStart
}

// Rows returns the displayed rows and any inline fetch error.
func (v *TimesheetsView) Rows() ([]timesheet.WeeklyTimesheet, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]timesheet.WeeklyTimesheet(nil), v.rows...), v.errMsg
}

// Refresh re-fetches the displayed week.
func (v *TimesheetsView) Refresh(ctx context.Context) {
	v.mu.Lock()
	weekStart := v.weekStart
	v.mu.Unlock()

	rows, err := v.ws.client.Timesheets(ctx, v.ws.session.Token(), weekStart)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.errMsg = err.Error()
		return
	}
	v.rows = rows
	v.errMsg = ""
}

// ChangeWeek shifts the window by the given number of days, ±7 from the
// prev/next controls, and re-fetches.
func (v *TimesheetsView) ChangeWeek(ctx context.Context, days int) {
	v.mu.Lock()
	v.weekStart = timesheet.ShiftWeek(v.weekStart, days)
	v.mu.Unlock()

	v.Refresh(ctx)
}

// DownloadWeek exports the displayed week as CSV, scoped to the week's exact
// day boundaries.
func (v *TimesheetsView) DownloadWeek(ctx context.Context) {
	v.mu.Lock()
	weekStart := v.weekStart
	v.mu.Unlock()

	start, end := timesheet.WeekRange(weekStart)
	filename := fmt.Sprintf("timesheet_export_%s_to_%s.csv",
		apitime.FormatDate(start), apitime.FormatDate(end))
	v.ws.client.Download(ctx, api.ExportPath(api.ExportTimesheets, start, end), filename, v.ws.session.Token())
}

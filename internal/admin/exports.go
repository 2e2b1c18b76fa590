package admin

import (
	"context"
	"sync"
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/api"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/timesheet"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/apitime"
)

// ExportsView accepts an explicit date range from the operator and triggers
// CSV exports over it.
type ExportsView struct {
	ws *Workspace

	mu        sync.Mutex
	startDate string
	endDate   string
	errMsg    string
}

func newExportsView(ws *Workspace) *ExportsView {
	return &ExportsView{ws: ws}
}

// SetRange records the operator's chosen bounds, each YYYY-MM-DD.
func (v *ExportsView) SetRange(startDate, endDate string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.startDate = startDate
	v.endDate = endDate
}

// Err returns the inline validation error.
func (v *ExportsView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// Export downloads one CSV of the given type over the selected range. A
// missing or malformed bound is rejected before any network call; the range
// is normalized to full-day boundaries.
func (v *ExportsView) Export(ctx context.Context, exportType string) {
	v.mu.Lock()
	startDate, endDate := v.startDate, v.endDate
	v.mu.Unlock()

	start, end, ok := v.validate(startDate, endDate)
	if !ok {
		return
	}

	start, end = timesheet.DayRange(start, end)
	v.ws.client.Download(ctx, api.ExportPath(exportType, start, end),
		api.ExportFilename(exportType, start, end), v.ws.session.Token())
}

func (v *ExportsView) validate(startDate, endDate string) (start, end time.Time, ok bool) {
	fail := func(msg string) (time.Time, time.Time, bool) {
		v.mu.Lock()
		v.errMsg = msg
		v.mu.Unlock()
		return time.Time{}, time.Time{}, false
	}

	if startDate == "" || endDate == "" {
		return fail("Please select both a start and end date.")
	}
	start, err := time.Parse(apitime.DateLayout, startDate)
	if err != nil {
		return fail("Start date is not a valid date.")
	}
	end, err = time.Parse(apitime.DateLayout, endDate)
	if err != nil {
		return fail("End date is not a valid date.")
	}

	v.mu.Lock()
	v.errMsg = ""
	v.mu.Unlock()
	return start, end, true
}

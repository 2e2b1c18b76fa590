package timesheet

import (
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/apitime"
)

// WeeklyTimesheet is one employee's hours for a selected week.
type WeeklyTimesheet struct {
	UserID     int64              `json:"userId"`
	UserEmail  string             `json:"userEmail"`
	DailyHours map[string]float64 `json:"dailyHours"`
	TotalHours float64            `json:"totalHours"`
}

// HoursOn returns the hours recorded on the given day, zero when absent.
func (w WeeklyTimesheet) HoursOn(day time.Time) float64 {
	return w.DailyHours[apitime.FormatDate(day)]
}

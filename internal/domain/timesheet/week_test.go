package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOf(t *testing.T) {
	cases := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{"monday stays", date(2024, 3, 4), date(2024, 3, 4)},
		{"wednesday rewinds", date(2024, 3, 6), date(2024, 3, 4)},
		{"saturday rewinds", date(2024, 3, 9), date(2024, 3, 4)},
		{"sunday belongs to preceding week", date(2024, 3, 10), date(2024, 3, 4)},
		{"next monday", date(2024, 3, 11), date(2024, 3, 11)},
		{"strips time of day", time.Date(2024, 3, 6, 17, 45, 12, 0, time.UTC), date(2024, 3, 4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, MondayOf(c.input))
		})
	}
}

func TestShiftWeek_RoundTrip(t *testing.T) {
	start := MondayOf(date(2024, 3, 6))
	assert.Equal(t, start, ShiftWeek(ShiftWeek(start, 7), -7))
	assert.Equal(t, date(2024, 3, 11), ShiftWeek(start, 7))
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(date(2024, 3, 4))
	assert.Len(t, days, 7)
	assert.Equal(t, date(2024, 3, 4), days[0])
	assert.Equal(t, date(2024, 3, 10), days[6])
}

func TestWeekRange(t *testing.T) {
	start, end := WeekRange(date(2024, 3, 4))
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC), end)
}

func TestDayRange(t *testing.T) {
	start, end := DayRange(date(2024, 3, 1), date(2024, 3, 15))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), end)
}

func TestWeeklyTimesheet_HoursOn(t *testing.T) {
	sheet := WeeklyTimesheet{
		DailyHours: map[string]float64{"2024-03-04": 7.5},
	}
	assert.Equal(t, 7.5, sheet.HoursOn(date(2024, 3, 4)))
	assert.Equal(t, 0.0, sheet.HoursOn(date(2024, 3, 5)))
}

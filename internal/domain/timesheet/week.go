package timesheet

import "time"

// MondayOf normalizes t to midnight of the Monday of its week. Sunday counts
// as the last day of the preceding week.
func MondayOf(t time.Time) time.Time {
	diff := int(t.Weekday()) - int(time.Monday)
	if t.Weekday() == time.Sunday {
		diff = 6
	}
	day := t.AddDate(0, 0, -diff)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

// ShiftWeek moves a week start by the given number of days, usually ±7.
func ShiftWeek(weekStart time.Time, days int) time.Time {
	return weekStart.AddDate(0, 0, days)
}

// WeekDays lists the seven days of the week beginning at weekStart.
func WeekDays(weekStart time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i)
	}
	return days
}

// WeekRange returns the exact day boundaries of the displayed week: start of
// the first day through the last second of the seventh day.
func WeekRange(weekStart time.Time) (start, end time.Time) {
	start = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	last := start.AddDate(0, 0, 6)
	end = time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, last.Location())
	return start, end
}

// DayRange expands a single date to its start-of-day/end-of-day bounds.
func DayRange(first, last time.Time) (start, end time.Time) {
	start = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	end = time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, last.Location())
	return start, end
}

package apitime

import (
	"fmt"
	"time"
)

// QueryLayout is the wire format for date-time query parameters: ISO-8601
// truncated to seconds, no zone suffix.
const QueryLayout = "2006-01-02T15:04:05"

// DateLayout is the wire format for date-only parameters.
const DateLayout = "2006-01-02"

// FormatQuery renders t for a startDate/endDate query parameter.
func FormatQuery(t time.Time) string {
	return t.Format(QueryLayout)
}

// FormatDate renders t for a date-only query parameter.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Parse decodes a server timestamp. Server times are naive local-date-times
// with no zone marker and must be interpreted as UTC before any local-time
// formatting.
func Parse(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999999",
		QueryLayout,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid server timestamp: %q", s)
}

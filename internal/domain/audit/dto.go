package audit

import (
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/apitime"
)

// LogEntry is a single audit record.
type LogEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Status    string `json:"status"`
	UserEmail string `json:"userEmail"`
	Details   string `json:"details"`
}

// When decodes the naive server timestamp as UTC.
func (e LogEntry) When() (time.Time, bool) {
	if e.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := apitime.Parse(e.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LogPage is one page of audit records with the page metadata the server
// serialises alongside the content.
type LogPage struct {
	Content       []LogEntry `json:"content"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int64      `json:"totalElements"`
	Number        int        `json:"number"`
	Size          int        `json:"size"`
}

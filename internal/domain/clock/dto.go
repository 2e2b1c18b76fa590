package clock

import (
	"time"

	"github.com/timesheet-offline/timeclock-client-go/internal/domain/user"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/apitime"
)

const (
	StatusClockedIn  = "Clocked In"
	StatusClockedOut = "Clocked Out"
)

// UserStatus is a read-only snapshot of one employee's clock state.
type UserStatus struct {
	ID                  int64     `json:"id"`
	Email               string    `json:"email"`
	Role                user.Role `json:"role"`
	Status              string    `json:"status"`
	LastActionTimestamp string    `json:"lastActionTimestamp"`
}

// ClockedIn reports whether the employee is currently clocked in.
func (s UserStatus) ClockedIn() bool {
	return s.Status == StatusClockedIn
}

// LastAction decodes the naive server timestamp as UTC. ok is false when the
// employee has never clocked.
func (s UserStatus) LastAction() (t time.Time, ok bool) {
	if s.LastActionTimestamp == "" {
		return time.Time{}, false
	}
	parsed, err := apitime.Parse(s.LastActionTimestamp)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// FilterClockedIn returns only the entries that are currently clocked in,
// preserving order.
func FilterClockedIn(entries []UserStatus) []UserStatus {
	var result []UserStatus
	for _, e := range entries {
		if e.ClockedIn() {
			result = append(result, e)
		}
	}
	return result
}

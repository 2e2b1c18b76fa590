package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failed API call normalized to a human-readable message. The
// message comes from the server's error body when one can be parsed, and
// falls back to a generic status line otherwise.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

func statusError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", status)
	}
	return &Error{StatusCode: status, Message: message}
}

// IsAuthError reports whether err is a rejected-credential response. The
// caller decides what to do with it; the client itself never forces a
// logout.
func IsAuthError(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

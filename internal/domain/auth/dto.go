package auth

import (
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/validator"
)

// PinLoginRequest is the kiosk clock-in/out request body.
type PinLoginRequest struct {
	Pin string `json:"pin"`
}

func (r *PinLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Pin) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin is required",
		})
	} else if !validator.IsNumeric(r.Pin) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin may only contain digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AdminLoginRequest is the email/password login body for the admin surface.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AdminLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TokenResponse is returned by a successful admin login.
type TokenResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ClockResponse is returned by a successful kiosk clock action.
type ClockResponse struct {
	Message                string   `json:"message"`
	UserEmail              string   `json:"userEmail"`
	Action                 string   `json:"action"`
	Timestamp              string   `json:"timestamp"`
	HoursWorkedThisSession *float64 `json:"hoursWorkedThisSession"`
}

package user

import (
	"strings"

	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/validator"
)

type Role string

const (
	RoleEmployee Role = "ROLE_EMPLOYEE"
	RoleAdmin    Role = "ROLE_ADMIN"
)

// Display returns the role without the wire prefix, for rendering.
func (r Role) Display() string {
	return strings.TrimPrefix(string(r), "ROLE_")
}

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// User is a managed account as returned by the admin API.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// CreateUserRequest creates a new account. The pin field carries an employee
// PIN or an admin password, depending on role.
type CreateUserRequest struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
	Role  Role   `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
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

	if validator.IsEmpty(r.Pin) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin is required",
		})
	}

	if !r.Role.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be ROLE_EMPLOYEE or ROLE_ADMIN",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ResetPinRequest sets a new PIN or password for an existing account.
type ResetPinRequest struct {
	NewPin string `json:"newPin"`
}

func (r *ResetPinRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.NewPin) {
		errs = append(errs, validator.ValidationError{
			Field:   "newPin",
			Message: "newPin is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

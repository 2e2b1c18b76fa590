package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyPin     = errors.New("new pin must not be empty")
)

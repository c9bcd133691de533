package service

import "errors"

// Service-level sentinel errors. Handlers match them with errors.Is and turn
// them into HTTP statuses; none of them is fatal to the process.
var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("not the trip owner")
	ErrInvalidRange       = errors.New("start date is after end date")
	ErrInvalidAmount      = errors.New("amount must be non-negative")
	ErrOutOfRange         = errors.New("index out of range")
	ErrValidation         = errors.New("validation error")
	ErrForbidden          = errors.New("admin privileges required")
)

// Package storage defines sentinel errors shared by storage backends.
// Callers match them with errors.Is.
package storage

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrUserExists = errors.New("user already exists")
)

package store

import "errors"

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername indicates that a user with this username already exists.
	ErrDuplicateUsername = errors.New("username already exists")
)

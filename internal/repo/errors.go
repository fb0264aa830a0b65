package repo

import "errors"

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned when a user insert hits the username primary key.
	ErrDuplicateUsername = errors.New("username already taken")
)

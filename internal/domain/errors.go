package domain

import "errors"

var (
	// ErrNotFound is returned when a channel or video required by an
	// operation does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a record violates registry invariants.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists is returned when a record collides with a unique key.
	ErrAlreadyExists = errors.New("already exists")
)

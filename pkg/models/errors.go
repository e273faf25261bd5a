package models

import "errors"

// Domain errors shared by the stores and the HTTP layer.
var (
	// ErrNotFound is returned when an operation addresses a prompt that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned when input fails validation; nothing was written.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized is returned when an admin token matches no stored hash.
	ErrUnauthorized = errors.New("unauthorized")
)

package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidTransition  = errors.New("invalid status transition")
	// ErrCorruptEntry reports a cached value that cannot be interpreted.
	ErrCorruptEntry = errors.New("corrupt cache entry")
)

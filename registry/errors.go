package registry

import "errors"

var (
	// ErrNotFound is returned when the named activity does not exist.
	ErrNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered is returned when the email is already on the roster.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrFull is returned when the activity has reached its capacity.
	ErrFull = errors.New("activity is full")
	// ErrNotRegistered is returned when withdrawing an email that is not on the roster.
	ErrNotRegistered = errors.New("not registered")
	// ErrInvalidSeed is returned when a seed violates the roster invariants.
	ErrInvalidSeed = errors.New("invalid seed")
)

package service

import "errors"

// Sentinel errors returned by the board services. Callers should use
// errors.Is to match these values; all three are recoverable and are meant
// to be surfaced to the user by the front end.
var (
	// ErrValidation indicates a required field is missing or malformed.
	ErrValidation = errors.New("validation error")
	// ErrDuplicate indicates the matricule or email is already registered.
	ErrDuplicate = errors.New("matricule or email already in use")
	// ErrNotFound indicates no user matches the given matricule.
	ErrNotFound = errors.New("not found")
)

package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConstraintViolation is returned when a check constraint or a
	// required field is violated.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrProtected is returned when deleting a record the store refuses to
	// remove, such as a system category.
	ErrProtected = errors.New("persistence: protected record")
)

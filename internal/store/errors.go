package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when an insert or update would violate a
// uniqueness constraint (email or username).
var ErrAlreadyExists = errors.New("already exists")

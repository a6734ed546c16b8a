package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when the identifier is unknown or
	// the password does not match. Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccessExpired is returned when the account's access window is over.
	ErrAccessExpired = errors.New("access expired")

	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("missing fields")

	// ErrInvalidButton is returned for button names outside the known set.
	ErrInvalidButton = errors.New("invalid button")
)

// RateLimitedError is returned while the analysis cooldown is active.
type RateLimitedError struct {
	// BlockedUntil is the epoch-ms moment the cooldown ends.
	BlockedUntil int64
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("analysis blocked until %d", e.BlockedUntil)
}

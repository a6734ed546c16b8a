// Package session holds the server-side state of logged-in clients.
//
// A session is created at login, addressed by an opaque ID carried in a
// signed cookie, and expires after a fixed TTL. The cooldown timestamp for
// the analysis endpoint lives here so the client can never tamper with it.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zinal-app/apiserver/types"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence operations for sessions.
type Store interface {
	// Create stores a new session and returns it with a fresh ID.
	Create(ctx context.Context, userID int64, isAdmin bool) (types.Session, error)

	// Get loads a session by ID. Returns ErrNotFound if missing or expired.
	Get(ctx context.Context, id string) (types.Session, error)

	// SetAnalysisStartedAt records the epoch-ms timestamp of a granted
	// analysis request, refreshing the session TTL.
	SetAnalysisStartedAt(ctx context.Context, id string, startedAt int64) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}

func newID() string {
	return uuid.NewString()
}

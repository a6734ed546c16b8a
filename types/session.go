package types

// Session is the server-side state of a logged-in client. It lives in the
// session store for the configured TTL and is deleted on logout.
type Session struct {
	// ID is the opaque session identifier referenced by the client cookie.
	ID string `json:"id"`

	// UserID identifies the logged-in user.
	UserID int64 `json:"user_id"`

	// IsAdmin is a snapshot of the user's admin flag taken at login.
	IsAdmin bool `json:"is_admin"`

	// AnalysisStartedAt is the epoch-millisecond timestamp of the last
	// granted analysis request. Zero means the session never ran one.
	AnalysisStartedAt int64 `json:"analysis_started_at"`
}

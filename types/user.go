package types

import "time"

// User represents an account in the system.
// It contains identity, access, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id" db:"id"`

	// Email is the user's email address. Unique across all users.
	Email string `json:"email" db:"email"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password"`

	// IsAdmin marks accounts allowed to use the admin panel and admin APIs.
	IsAdmin bool `json:"is_admin" db:"is_admin"`

	// AccessExpiresAt is the moment the account stops being usable.
	// A nil value means unlimited access.
	AccessExpiresAt *time.Time `json:"access_expires_at" db:"access_expires_at"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AccessValid reports whether the account may still be used at the given
// moment. Accounts without an expiry are valid forever.
func (u User) AccessValid(now time.Time) bool {
	return u.AccessExpiresAt == nil || u.AccessExpiresAt.After(now)
}

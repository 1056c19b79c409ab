package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user, assigned at creation
	// and immutable afterwards.
	ID string `json:"id"`

	// Email is the unique login key of the account. Lookups are
	// exact-match; no case folding is applied.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext, and is never
	// serialized or logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// AuthUser is the identity attached to a request context by the
// authorization middleware after a bearer token has been verified and
// resolved against the user store.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

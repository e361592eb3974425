package models

// User represents a registered user account.
//
// Identity is the username, which is immutable once created. Credential
// handling (hashing, tokens) lives in the auth package; the core services
// only ever compare usernames for ownership checks.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique login name. Immutable after creation.
	Username string

	// DisplayName is the human-readable name shown in the UI.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

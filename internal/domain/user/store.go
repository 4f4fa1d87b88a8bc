package user

import (
	"context"
	"errors"
)

// Sentinel errors for user store operations.
var (
	// ErrUserNotFound is returned when updating or removing an unknown user.
	ErrUserNotFound = errors.New("user not found")
	// ErrPrimaryUserExists is returned when saving a second primary user.
	ErrPrimaryUserExists = errors.New("primary user already exists")
)

// Repository persists the single primary user.
// This interface is defined in the domain to avoid circular imports.
// Implementations: SQLite (prod), in-memory (test).
//
// The repository enforces the single-user device model: at most one primary
// user may exist at a time.
type Repository interface {
	// NextID returns a fresh user ID.
	NextID() ID

	// Save persists the user. Creating a second distinct user returns
	// ErrPrimaryUserExists; updating a user that was never saved returns
	// ErrUserNotFound.
	Save(ctx context.Context, u *User) error

	// Remove deletes the user. Returns ErrUserNotFound if absent.
	Remove(ctx context.Context, u *User) error

	// PrimaryUser returns the registered user, or nil when none exists.
	PrimaryUser(ctx context.Context) (*User, error)

	// UserByEncryptedPassword returns the user whose stored encrypted
	// password equals the given value, or nil when there is no match.
	UserByEncryptedPassword(ctx context.Context, encryptedPassword string) (*User, error)
}

// Package user contains the single primary user entity of the device.
package user

import (
	"errors"

	"github.com/google/uuid"

	"github.com/wallet-guard/walletguard/internal/domain/session"
)

// ErrInvalidUserID is returned when a user ID is not a valid UUID string.
var ErrInvalidUserID = errors.New("user ID must be a UUID string")

// ID identifies a user. Construct through NewID or GenerateID.
type ID string

// NewID validates a raw string as a user ID.
func NewID(raw string) (ID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", ErrInvalidUserID
	}
	return ID(raw), nil
}

// GenerateID returns a new random user ID.
func GenerateID() ID {
	return ID(uuid.New().String())
}

// String returns the raw identifier value.
func (id ID) String() string {
	return string(id)
}

// User is the device owner. The password field holds the already-encrypted
// representation; plaintext never reaches this type. The attached session ID
// is informational only; the gatekeeper stays authoritative for access checks.
type User struct {
	id        ID
	password  string
	sessionID *session.ID
}

// New creates a user with an encrypted password and no session attachment.
func New(id ID, encryptedPassword string) *User {
	return &User{id: id, password: encryptedPassword}
}

// Restore rebuilds a user from persisted state.
func Restore(id ID, encryptedPassword string, sessionID *session.ID) *User {
	u := New(id, encryptedPassword)
	if sessionID != nil {
		sid := *sessionID
		u.sessionID = &sid
	}
	return u
}

// ID returns the user identifier.
func (u *User) ID() ID { return u.id }

// EncryptedPassword returns the stored encrypted password.
func (u *User) EncryptedPassword() string { return u.password }

// SessionID returns the attached session ID, or nil.
func (u *User) SessionID() *session.ID {
	if u.sessionID == nil {
		return nil
	}
	sid := *u.sessionID
	return &sid
}

// AttachSession records the session issued for this user.
func (u *User) AttachSession(id session.ID) {
	sid := id
	u.sessionID = &sid
}

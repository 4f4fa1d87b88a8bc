// Package session contains the access session entity: a time-boxed proof of
// successful authentication that can be started, renewed and finished.
package session

import (
	"errors"

	"github.com/google/uuid"
)

// Sentinel errors for session construction and lifecycle.
var (
	// ErrInvalidSessionID is returned when a session ID is not a 36-character UUID string.
	ErrInvalidSessionID = errors.New("session ID must be a 36-character UUID string")
	// ErrInvalidDuration is returned when the session duration is zero or negative.
	ErrInvalidDuration = errors.New("session duration must be positive")
	// ErrSessionWasActiveAlready is returned when starting a session that is still active.
	ErrSessionWasActiveAlready = errors.New("session was active already")
	// ErrSessionIsNotActive is returned when renewing or finishing an inactive session.
	ErrSessionIsNotActive = errors.New("session is not active")
	// ErrSessionWasFinishedAlready is returned when starting a finished session.
	ErrSessionWasFinishedAlready = errors.New("session was finished already")
)

// sessionIDLength is the canonical length of a UUID in string form.
const sessionIDLength = 36

// ID identifies a session. Construct through NewID or GenerateID so an
// invalid identifier cannot exist.
type ID string

// NewID validates a raw string as a session ID.
// The value must be exactly 36 characters (UUID string form).
func NewID(raw string) (ID, error) {
	if len(raw) != sessionIDLength {
		return "", ErrInvalidSessionID
	}
	return ID(raw), nil
}

// GenerateID returns a new random session ID.
func GenerateID() ID {
	return ID(uuid.New().String())
}

// String returns the raw identifier value.
func (id ID) String() string {
	return string(id)
}

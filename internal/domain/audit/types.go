// Package audit contains domain types for the authentication audit trail.
package audit

import (
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
)

// EventType constants for authentication audit records.
const (
	// EventTypeRegister records a user registration.
	EventTypeRegister = "auth.register"
	// EventTypeAllow records a successful authentication and session grant.
	EventTypeAllow = "auth.allow"
	// EventTypeDeny records a failed authentication attempt.
	EventTypeDeny = "auth.deny"
	// EventTypeBlocked records an attempt rejected without a credential check
	// because the gatekeeper lockout is in effect.
	EventTypeBlocked = "auth.blocked"
	// EventTypeLogout records an explicit session finish.
	EventTypeLogout = "auth.logout"
	// EventTypeReset records an administrative gatekeeper reset.
	EventTypeReset = "auth.reset"
)

// Method constants identify the credential factor used.
const (
	MethodPassword  = "password"
	MethodBiometric = "biometric"
	MethodNone      = ""
)

// Record represents a single auditable authentication event.
// Session and user identifiers are stored as fingerprints, never raw.
type Record struct {
	// Timestamp is when the event occurred (UTC).
	Timestamp time.Time `json:"timestamp"`
	// EventType categorizes the event (auth.*).
	EventType string `json:"event_type"`
	// Method is the credential factor used, when applicable.
	Method string `json:"method,omitempty"`
	// UserFingerprint is a short non-reversible fingerprint of the user ID.
	UserFingerprint string `json:"user,omitempty"`
	// SessionFingerprint is a short non-reversible fingerprint of the session ID.
	SessionFingerprint string `json:"session,omitempty"`
	// FailedAttempts is the gatekeeper's failed-attempt count after the event.
	FailedAttempts int `json:"failed_attempts"`
	// Reason carries extra context (e.g. "lockout in effect").
	Reason string `json:"reason,omitempty"`
}

// Fingerprint returns a short non-reversible fingerprint of an identifier,
// safe to write to logs and audit files. Empty input yields empty output.
func Fingerprint(id string) string {
	if id == "" {
		return ""
	}
	sum := xxhash.Sum64String(id)
	var b [8]byte
	for i := 7; i >= 0; i-- {
		b[i] = byte(sum)
		sum >>= 8
	}
	return hex.EncodeToString(b[:])
}

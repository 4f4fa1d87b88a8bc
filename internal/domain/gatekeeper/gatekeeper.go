// Package gatekeeper contains the lockout and session-issuance entity.
//
// A Gatekeeper tracks failed and successful authentication attempts against an
// AuthenticationPolicy. When failed attempts reach the policy maximum, access
// is blocked until the block period elapses from the most recent denial. The
// gatekeeper owns at most one live access session; issuing a new session
// invalidates the previous one.
package gatekeeper

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-guard/walletguard/internal/domain/policy"
	"github.com/wallet-guard/walletguard/internal/domain/session"
)

// Sentinel errors for gatekeeper operations.
var (
	// ErrInvalidGatekeeperID is returned when a gatekeeper ID is not a valid UUID string.
	ErrInvalidGatekeeperID = errors.New("gatekeeper ID must be a UUID string")
	// ErrAccessBlocked is returned when authentication attempts are exhausted
	// and the block period has not lifted yet.
	ErrAccessBlocked = errors.New("access blocked")
)

// ID identifies a gatekeeper. Construct through NewID or GenerateID.
type ID string

// NewID validates a raw string as a gatekeeper ID.
func NewID(raw string) (ID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", ErrInvalidGatekeeperID
	}
	return ID(raw), nil
}

// GenerateID returns a new random gatekeeper ID.
func GenerateID() ID {
	return ID(uuid.New().String())
}

// String returns the raw identifier value.
func (id ID) String() string {
	return string(id)
}

// Gatekeeper decides whether a login attempt is currently permitted and issues
// the resulting time-boxed access session. It is the aggregate root for the
// policy value and the session entity: the session is owned exclusively and
// never aliased outside the gatekeeper.
type Gatekeeper struct {
	id                 ID
	policy             policy.AuthenticationPolicy
	session            *session.Session
	failedAttemptCount int
	accessDeniedAt     *time.Time
}

// New creates a gatekeeper with no session and zero lockout state.
func New(id ID, p policy.AuthenticationPolicy) *Gatekeeper {
	return &Gatekeeper{id: id, policy: p}
}

// Restore rebuilds a gatekeeper from persisted state. Used by repositories.
func Restore(id ID, sess *session.Session, p policy.AuthenticationPolicy, failedAttemptCount int, accessDeniedAt *time.Time) *Gatekeeper {
	g := New(id, p)
	g.session = sess
	g.failedAttemptCount = failedAttemptCount
	if accessDeniedAt != nil {
		t := *accessDeniedAt
		g.accessDeniedAt = &t
	}
	return g
}

// ID returns the gatekeeper identifier.
func (g *Gatekeeper) ID() ID { return g.id }

// Policy returns the current authentication policy.
func (g *Gatekeeper) Policy() policy.AuthenticationPolicy { return g.policy }

// FailedAttemptCount returns the number of consecutive failed attempts.
func (g *Gatekeeper) FailedAttemptCount() int { return g.failedAttemptCount }

// AccessDeniedAt returns when access was last denied, or nil.
func (g *Gatekeeper) AccessDeniedAt() *time.Time {
	if g.accessDeniedAt == nil {
		return nil
	}
	t := *g.accessDeniedAt
	return &t
}

// Session returns the current session, or nil. Repository use only: the
// session belongs to the gatekeeper and must not be mutated by callers.
func (g *Gatekeeper) Session() *session.Session { return g.session }

// IsAccessPossible reports whether an authentication attempt may be made at t.
// A single denial does not block; once attempts are exhausted, blocking lasts
// until the block period elapses from the most recent denial (every denial
// refreshes the denial timestamp).
func (g *Gatekeeper) IsAccessPossible(t time.Time) bool {
	if g.accessDeniedAt == nil {
		return true
	}
	blockLiftTime := g.accessDeniedAt.Add(g.policy.BlockDuration)
	blockExpired := !t.Before(blockLiftTime)
	hasAttemptsLeft := g.failedAttemptCount < g.policy.MaxFailedAttempts
	return hasAttemptsLeft || blockExpired
}

// AllowAccess records a successful authentication at t: it starts a brand-new
// session, discards any previous one, and clears the lockout state. This is
// the only operation that resets the failed-attempt counter.
func (g *Gatekeeper) AllowAccess(t time.Time) (session.ID, error) {
	if !g.IsAccessPossible(t) {
		return "", ErrAccessBlocked
	}
	sess, err := session.New(session.GenerateID(), g.policy.SessionDuration)
	if err != nil {
		return "", err
	}
	if err := sess.Start(t); err != nil {
		return "", err
	}
	g.session = sess
	g.failedAttemptCount = 0
	g.accessDeniedAt = nil
	return sess.ID(), nil
}

// DenyAccess records a failed authentication at t. It never fails: it is
// itself the lockout-recording operation, so the lockout it enforces cannot
// reject it. Any current session is discarded.
func (g *Gatekeeper) DenyAccess(t time.Time) {
	g.session = nil
	g.failedAttemptCount++
	stamp := t
	g.accessDeniedAt = &stamp
}

// UseAccess renews the current session at t, extending an already-granted
// session without re-authenticating.
func (g *Gatekeeper) UseAccess(t time.Time) error {
	if !g.IsAccessPossible(t) {
		return ErrAccessBlocked
	}
	if g.session == nil {
		return session.ErrSessionIsNotActive
	}
	return g.session.Renew(t)
}

// EndAccess finishes the current session at t. Used for explicit logout.
func (g *Gatekeeper) EndAccess(t time.Time) error {
	if g.session == nil {
		return session.ErrSessionIsNotActive
	}
	return g.session.Finish(t)
}

// HasAccess reports whether the given session ID names the current session
// and that session is active at t. Side-effect free.
func (g *Gatekeeper) HasAccess(id session.ID, t time.Time) bool {
	if g.session == nil || g.session.ID() != id {
		return false
	}
	return g.session.IsActiveAt(t)
}

// ChangeSessionDuration replaces the policy's session duration.
// Any policy change resets the gatekeeper: a changed policy must not apply
// retroactively to a session granted under the old one.
func (g *Gatekeeper) ChangeSessionDuration(d time.Duration) error {
	p, err := g.policy.WithSessionDuration(d)
	if err != nil {
		return err
	}
	g.setPolicy(p)
	return nil
}

// ChangeMaxFailedAttempts replaces the policy's attempt limit and resets the gatekeeper.
func (g *Gatekeeper) ChangeMaxFailedAttempts(n int) error {
	p, err := g.policy.WithMaxFailedAttempts(n)
	if err != nil {
		return err
	}
	g.setPolicy(p)
	return nil
}

// ChangeBlockDuration replaces the policy's block duration and resets the gatekeeper.
func (g *Gatekeeper) ChangeBlockDuration(d time.Duration) error {
	p, err := g.policy.WithBlockDuration(d)
	if err != nil {
		return err
	}
	g.setPolicy(p)
	return nil
}

func (g *Gatekeeper) setPolicy(p policy.AuthenticationPolicy) {
	g.policy = p
	g.Reset()
}

// Reset discards the current session and zeroes the lockout state.
func (g *Gatekeeper) Reset() {
	g.session = nil
	g.failedAttemptCount = 0
	g.accessDeniedAt = nil
}

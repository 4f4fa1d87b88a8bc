// Package policy contains the authentication policy value object.
package policy

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy is the base error for all policy validation failures.
// Field-specific errors wrap it, so errors.Is(err, ErrInvalidPolicy) matches any of them.
var ErrInvalidPolicy = errors.New("invalid authentication policy")

// Field-specific validation errors.
var (
	// ErrSessionDurationNotPositive is returned when the session duration is zero or negative.
	ErrSessionDurationNotPositive = fmt.Errorf("%w: session duration must be positive", ErrInvalidPolicy)
	// ErrMaxFailedAttemptsNotPositive is returned when max failed attempts is zero or negative.
	ErrMaxFailedAttemptsNotPositive = fmt.Errorf("%w: max failed attempts must be positive", ErrInvalidPolicy)
	// ErrBlockDurationNegative is returned when the block duration is negative.
	ErrBlockDurationNegative = fmt.Errorf("%w: block duration must be non-negative", ErrInvalidPolicy)
)

// AuthenticationPolicy configures gatekeeper behavior: how long an access session
// lasts, how many failed attempts are tolerated, and how long authentication is
// blocked once they are exhausted.
//
// The type is an immutable value. Field changes go through the WithX methods,
// which validate and return a new policy instead of mutating in place.
type AuthenticationPolicy struct {
	// SessionDuration is the period during which no re-authentication is required.
	SessionDuration time.Duration
	// MaxFailedAttempts is the number of failed attempts before authentication
	// becomes blocked for BlockDuration.
	MaxFailedAttempts int
	// BlockDuration is the period during which authentication is forbidden.
	BlockDuration time.Duration
}

// New creates a policy, validating all three fields.
func New(sessionDuration time.Duration, maxFailedAttempts int, blockDuration time.Duration) (AuthenticationPolicy, error) {
	p := AuthenticationPolicy{
		SessionDuration:   sessionDuration,
		MaxFailedAttempts: maxFailedAttempts,
		BlockDuration:     blockDuration,
	}
	if err := p.validate(); err != nil {
		return AuthenticationPolicy{}, err
	}
	return p, nil
}

func (p AuthenticationPolicy) validate() error {
	if p.SessionDuration <= 0 {
		return ErrSessionDurationNotPositive
	}
	if p.MaxFailedAttempts <= 0 {
		return ErrMaxFailedAttemptsNotPositive
	}
	if p.BlockDuration < 0 {
		return ErrBlockDurationNegative
	}
	return nil
}

// WithSessionDuration returns a copy of the policy with a new session duration.
func (p AuthenticationPolicy) WithSessionDuration(d time.Duration) (AuthenticationPolicy, error) {
	return New(d, p.MaxFailedAttempts, p.BlockDuration)
}

// WithMaxFailedAttempts returns a copy of the policy with a new attempt limit.
func (p AuthenticationPolicy) WithMaxFailedAttempts(n int) (AuthenticationPolicy, error) {
	return New(p.SessionDuration, n, p.BlockDuration)
}

// WithBlockDuration returns a copy of the policy with a new block duration.
func (p AuthenticationPolicy) WithBlockDuration(d time.Duration) (AuthenticationPolicy, error) {
	return New(p.SessionDuration, p.MaxFailedAttempts, d)
}

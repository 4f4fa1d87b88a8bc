// Package biometry provides biometric authenticator adapters.
//
// Real sensor integration is platform UI territory; these adapters cover the
// headless environments this process runs in.
package biometry

import (
	"context"
	"sync/atomic"

	"github.com/wallet-guard/walletguard/internal/port/outbound"
)

// Unavailable is the adapter for hosts without a biometric sensor.
// Activation succeeds (the capability is simply dormant); authentication
// always reports no match.
type Unavailable struct{}

// NewUnavailable creates the no-sensor adapter.
func NewUnavailable() Unavailable {
	return Unavailable{}
}

// Activate enables the dormant capability.
func (Unavailable) Activate(context.Context) error {
	return nil
}

// Authenticate always reports no match.
func (Unavailable) Authenticate(context.Context) (bool, error) {
	return false, nil
}

// Scripted is a configurable adapter for development and tests: it returns a
// preset outcome and counts invocations.
type Scripted struct {
	outcome   atomic.Bool
	activated atomic.Bool
	calls     atomic.Int64
}

// NewScripted creates a scripted adapter with the given authentication outcome.
func NewScripted(outcome bool) *Scripted {
	s := &Scripted{}
	s.outcome.Store(outcome)
	return s
}

// SetOutcome changes the authentication outcome.
func (s *Scripted) SetOutcome(ok bool) {
	s.outcome.Store(ok)
}

// Activate records activation.
func (s *Scripted) Activate(context.Context) error {
	s.activated.Store(true)
	return nil
}

// Activated reports whether Activate was called.
func (s *Scripted) Activated() bool {
	return s.activated.Load()
}

// Authenticate returns the preset outcome.
func (s *Scripted) Authenticate(context.Context) (bool, error) {
	s.calls.Add(1)
	return s.outcome.Load(), nil
}

// Calls returns how many times Authenticate was invoked.
func (s *Scripted) Calls() int64 {
	return s.calls.Load()
}

// Compile-time interface verification.
var (
	_ outbound.BiometricAuthenticator = Unavailable{}
	_ outbound.BiometricAuthenticator = (*Scripted)(nil)
)

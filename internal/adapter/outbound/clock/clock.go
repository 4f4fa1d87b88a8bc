// Package clock provides the system clock adapter.
package clock

import (
	"time"

	"github.com/wallet-guard/walletguard/internal/port/outbound"
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// NewSystemClock creates a system clock.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current time (UTC).
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Compile-time interface verification.
var _ outbound.Clock = SystemClock{}

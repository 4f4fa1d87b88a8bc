// Package outbound defines the outbound port interfaces for the capabilities
// the identity service consumes: time, password encryption, and biometry.
package outbound

import (
	"context"
	"time"
)

// Clock supplies the current time. Injected so that every time-dependent
// decision is deterministic under test.
type Clock interface {
	Now() time.Time
}

// Encryptor is a one-way, deterministic password transform. Determinism is
// part of the contract: authentication looks up the user by the encrypted
// value, so equal plaintexts must encrypt equally.
type Encryptor interface {
	Encrypt(plaintext string) string
}

// BiometricAuthenticator is the outbound port for the device biometric sensor.
// Adapters may prompt the user; a dismissed prompt surfaces as (false, nil).
type BiometricAuthenticator interface {
	// Activate enables biometric authentication for the device.
	// Called once during user registration.
	Activate(ctx context.Context) error

	// Authenticate prompts for a biometric factor and reports the outcome.
	Authenticate(ctx context.Context) (bool, error)
}

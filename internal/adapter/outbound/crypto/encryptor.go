// Package crypto provides the password encryption adapter.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/wallet-guard/walletguard/internal/port/outbound"
)

// SHA256Encryptor is a one-way, deterministic password transform. The
// Encryptor contract requires determinism because authentication looks the
// user up by encrypted value; a salted scheme cannot serve that lookup.
// Output format is "sha256:<hex>".
type SHA256Encryptor struct{}

// NewSHA256Encryptor creates the encryptor.
func NewSHA256Encryptor() SHA256Encryptor {
	return SHA256Encryptor{}
}

// Encrypt returns the one-way transform of the plaintext.
func (SHA256Encryptor) Encrypt(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Compile-time interface verification.
var _ outbound.Encryptor = SHA256Encryptor{}

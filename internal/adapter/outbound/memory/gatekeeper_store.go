// Package memory provides in-memory implementations of outbound ports.
package memory

import (
	"context"
	"sync"

	"github.com/wallet-guard/walletguard/internal/domain/gatekeeper"
	"github.com/wallet-guard/walletguard/internal/domain/session"
)

// GatekeeperStore implements gatekeeper.Repository with a single in-memory
// slot. Thread-safe for concurrent access. For development/testing only.
type GatekeeperStore struct {
	mu         sync.RWMutex
	gatekeeper *gatekeeper.Gatekeeper
}

// NewGatekeeperStore creates an empty in-memory gatekeeper store.
func NewGatekeeperStore() *GatekeeperStore {
	return &GatekeeperStore{}
}

// NextID returns a fresh gatekeeper ID.
func (s *GatekeeperStore) NextID() gatekeeper.ID {
	return gatekeeper.GenerateID()
}

// Save persists the gatekeeper, replacing any previous record.
func (s *GatekeeperStore) Save(_ context.Context, g *gatekeeper.Gatekeeper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Store a copy to prevent external mutation.
	copied, err := copyGatekeeper(g)
	if err != nil {
		return err
	}
	s.gatekeeper = copied
	return nil
}

// Gatekeeper loads the persisted gatekeeper.
func (s *GatekeeperStore) Gatekeeper(_ context.Context) (*gatekeeper.Gatekeeper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gatekeeper == nil {
		return nil, gatekeeper.ErrGatekeeperNotFound
	}
	return copyGatekeeper(s.gatekeeper)
}

// copyGatekeeper creates a deep copy of a gatekeeper, session included.
func copyGatekeeper(g *gatekeeper.Gatekeeper) (*gatekeeper.Gatekeeper, error) {
	var sess *session.Session
	if src := g.Session(); src != nil {
		var err error
		sess, err = session.Restore(src.ID(), src.Duration(), src.StartedAt(), src.EndedAt(), src.UpdatedAt())
		if err != nil {
			return nil, err
		}
	}
	return gatekeeper.Restore(g.ID(), sess, g.Policy(), g.FailedAttemptCount(), g.AccessDeniedAt()), nil
}

// Compile-time interface verification.
var _ gatekeeper.Repository = (*GatekeeperStore)(nil)

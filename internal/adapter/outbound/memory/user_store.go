package memory

import (
	"context"
	"sync"

	"github.com/wallet-guard/walletguard/internal/domain/user"
)

// UserStore implements user.Repository with a single in-memory slot,
// enforcing the single-primary-user invariant. Thread-safe for concurrent
// access. For development/testing only.
type UserStore struct {
	mu   sync.RWMutex
	user *user.User
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{}
}

// NextID returns a fresh user ID.
func (s *UserStore) NextID() user.ID {
	return user.GenerateID()
}

// Save persists the user. A second distinct user is rejected.
func (s *UserStore) Save(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil && s.user.ID() != u.ID() {
		return user.ErrPrimaryUserExists
	}
	s.user = copyUser(u)
	return nil
}

// Remove deletes the user.
func (s *UserStore) Remove(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID() != u.ID() {
		return user.ErrUserNotFound
	}
	s.user = nil
	return nil
}

// PrimaryUser returns the registered user, or nil when none exists.
func (s *UserStore) PrimaryUser(_ context.Context) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, nil
	}
	return copyUser(s.user), nil
}

// UserByEncryptedPassword returns the user matching the encrypted password,
// or nil when there is no match.
func (s *UserStore) UserByEncryptedPassword(_ context.Context, encryptedPassword string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil || s.user.EncryptedPassword() != encryptedPassword {
		return nil, nil
	}
	return copyUser(s.user), nil
}

// copyUser creates a deep copy of a user.
func copyUser(u *user.User) *user.User {
	return user.Restore(u.ID(), u.EncryptedPassword(), u.SessionID())
}

// Compile-time interface verification.
var _ user.Repository = (*UserStore)(nil)

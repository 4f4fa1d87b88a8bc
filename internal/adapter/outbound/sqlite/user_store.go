package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wallet-guard/walletguard/internal/domain/session"
	"github.com/wallet-guard/walletguard/internal/domain/user"
)

// UserStore implements user.Repository on a single-row SQLite table,
// enforcing the single-primary-user invariant.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a store over an opened database.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// NextID returns a fresh user ID.
func (s *UserStore) NextID() user.ID {
	return user.GenerateID()
}

// Save persists the user. A second distinct user is rejected with
// user.ErrPrimaryUserExists.
func (s *UserStore) Save(ctx context.Context, u *user.User) error {
	existing, err := s.PrimaryUser(ctx)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID() != u.ID() {
		return user.ErrPrimaryUserExists
	}

	var sessionID sql.NullString
	if sid := u.SessionID(); sid != nil {
		sessionID = sql.NullString{String: sid.String(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (slot, id, password, session_id) VALUES (1, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			id = excluded.id,
			password = excluded.password,
			session_id = excluded.session_id`,
		u.ID().String(), u.EncryptedPassword(), sessionID)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Remove deletes the user. Returns user.ErrUserNotFound if absent.
func (s *UserStore) Remove(ctx context.Context, u *user.User) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE slot = 1 AND id = ?`, u.ID().String())
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	if n == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// PrimaryUser returns the registered user, or nil when none exists.
func (s *UserStore) PrimaryUser(ctx context.Context) (*user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, password, session_id FROM users WHERE slot = 1`))
}

// UserByEncryptedPassword returns the user matching the encrypted password,
// or nil when there is no match.
func (s *UserStore) UserByEncryptedPassword(ctx context.Context, encryptedPassword string) (*user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, password, session_id FROM users WHERE slot = 1 AND password = ?`, encryptedPassword))
}

func (s *UserStore) scanUser(row *sql.Row) (*user.User, error) {
	var (
		rawID     string
		password  string
		sessionID sql.NullString
	)
	err := row.Scan(&rawID, &password, &sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	id, err := user.NewID(rawID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	var sid *session.ID
	if sessionID.Valid {
		parsed, err := session.NewID(sessionID.String)
		if err != nil {
			return nil, fmt.Errorf("load user: %w", err)
		}
		sid = &parsed
	}
	return user.Restore(id, password, sid), nil
}

// Compile-time interface verification.
var _ user.Repository = (*UserStore)(nil)

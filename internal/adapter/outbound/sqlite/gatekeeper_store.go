package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wallet-guard/walletguard/internal/domain/gatekeeper"
	"github.com/wallet-guard/walletguard/internal/domain/policy"
	"github.com/wallet-guard/walletguard/internal/domain/session"
)

// GatekeeperStore implements gatekeeper.Repository on a single-row SQLite table.
type GatekeeperStore struct {
	db *sql.DB
}

// NewGatekeeperStore creates a store over an opened database.
func NewGatekeeperStore(db *sql.DB) *GatekeeperStore {
	return &GatekeeperStore{db: db}
}

// NextID returns a fresh gatekeeper ID.
func (s *GatekeeperStore) NextID() gatekeeper.ID {
	return gatekeeper.GenerateID()
}

// Save persists the gatekeeper, replacing any previous record.
func (s *GatekeeperStore) Save(ctx context.Context, g *gatekeeper.Gatekeeper) error {
	var (
		sessionID  sql.NullString
		sessionDur sql.NullInt64
		startedAt  sql.NullInt64
		endedAt    sql.NullInt64
		updatedAt  sql.NullInt64
	)
	if sess := g.Session(); sess != nil {
		sessionID = sql.NullString{String: sess.ID().String(), Valid: true}
		sessionDur = sql.NullInt64{Int64: int64(sess.Duration()), Valid: true}
		startedAt = nullUnixNano(sess.StartedAt())
		endedAt = nullUnixNano(sess.EndedAt())
		updatedAt = nullUnixNano(sess.UpdatedAt())
	}

	p := g.Policy()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gatekeepers (
			slot, id, session_duration_ns, max_failed_attempts, block_duration_ns,
			failed_attempt_count, access_denied_at,
			session_id, session_duration2_ns, session_started_at, session_ended_at, session_updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			id = excluded.id,
			session_duration_ns = excluded.session_duration_ns,
			max_failed_attempts = excluded.max_failed_attempts,
			block_duration_ns = excluded.block_duration_ns,
			failed_attempt_count = excluded.failed_attempt_count,
			access_denied_at = excluded.access_denied_at,
			session_id = excluded.session_id,
			session_duration2_ns = excluded.session_duration2_ns,
			session_started_at = excluded.session_started_at,
			session_ended_at = excluded.session_ended_at,
			session_updated_at = excluded.session_updated_at`,
		g.ID().String(), int64(p.SessionDuration), p.MaxFailedAttempts, int64(p.BlockDuration),
		g.FailedAttemptCount(), nullUnixNano(g.AccessDeniedAt()),
		sessionID, sessionDur, startedAt, endedAt, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("save gatekeeper: %w", err)
	}
	return nil
}

// Gatekeeper loads the persisted gatekeeper.
func (s *GatekeeperStore) Gatekeeper(ctx context.Context) (*gatekeeper.Gatekeeper, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_duration_ns, max_failed_attempts, block_duration_ns,
		       failed_attempt_count, access_denied_at,
		       session_id, session_duration2_ns, session_started_at, session_ended_at, session_updated_at
		FROM gatekeepers WHERE slot = 1`)

	var (
		rawID       string
		sessDurNS   int64
		maxAttempts int
		blockDurNS  int64
		failedCount int
		deniedAt    sql.NullInt64
		sessionID   sql.NullString
		sessionDur  sql.NullInt64
		startedAt   sql.NullInt64
		endedAt     sql.NullInt64
		updatedAt   sql.NullInt64
	)
	err := row.Scan(&rawID, &sessDurNS, &maxAttempts, &blockDurNS,
		&failedCount, &deniedAt,
		&sessionID, &sessionDur, &startedAt, &endedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gatekeeper.ErrGatekeeperNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load gatekeeper: %w", err)
	}

	id, err := gatekeeper.NewID(rawID)
	if err != nil {
		return nil, fmt.Errorf("load gatekeeper: %w", err)
	}
	p, err := policy.New(time.Duration(sessDurNS), maxAttempts, time.Duration(blockDurNS))
	if err != nil {
		return nil, fmt.Errorf("load gatekeeper: %w", err)
	}

	var sess *session.Session
	if sessionID.Valid {
		sid, err := session.NewID(sessionID.String)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		sess, err = session.Restore(sid, time.Duration(sessionDur.Int64),
			timeFromNull(startedAt), timeFromNull(endedAt), timeFromNull(updatedAt))
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
	}

	return gatekeeper.Restore(id, sess, p, failedCount, timeFromNull(deniedAt)), nil
}

func nullUnixNano(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func timeFromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(0, v.Int64).UTC()
	return &t
}

// Compile-time interface verification.
var _ gatekeeper.Repository = (*GatekeeperStore)(nil)

package gatekeeper

import (
	"errors"
	"testing"
	"time"

	"github.com/wallet-guard/walletguard/internal/domain/policy"
	"github.com/wallet-guard/walletguard/internal/domain/session"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newGatekeeper(t *testing.T, sessionDuration time.Duration, maxAttempts int, blockDuration time.Duration) *Gatekeeper {
	t.Helper()
	p, err := policy.New(sessionDuration, maxAttempts, blockDuration)
	if err != nil {
		t.Fatalf("policy.New() error = %v", err)
	}
	return New(GenerateID(), p)
}

func TestNewID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "valid UUID", raw: "123e4567-e89b-12d3-a456-426614174000"},
		{name: "garbage", raw: "not-a-uuid", wantErr: ErrInvalidGatekeeperID},
		{name: "empty", raw: "", wantErr: ErrInvalidGatekeeperID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewID(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewID(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 3, 10*time.Second)
	if g.Session() != nil {
		t.Error("new gatekeeper must have no session")
	}
	if g.FailedAttemptCount() != 0 {
		t.Errorf("FailedAttemptCount() = %d, want 0", g.FailedAttemptCount())
	}
	if g.AccessDeniedAt() != nil {
		t.Error("new gatekeeper must have no denial timestamp")
	}
	if !g.IsAccessPossible(t0) {
		t.Error("access must be possible for a fresh gatekeeper")
	}
}

func TestAllowAccess(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 3, 10*time.Second)

	id, err := g.AllowAccess(t0)
	if err != nil {
		t.Fatalf("AllowAccess() error = %v", err)
	}
	if !g.HasAccess(id, t0) {
		t.Error("HasAccess() must be true immediately after AllowAccess()")
	}

	// A second grant invalidates the first session.
	id2, err := g.AllowAccess(t0.Add(2 * time.Minute))
	if err != nil {
		t.Fatalf("second AllowAccess() error = %v", err)
	}
	if g.HasAccess(id, t0.Add(2*time.Minute)) {
		t.Error("old session must be invalid after a new grant")
	}
	if !g.HasAccess(id2, t0.Add(2*time.Minute)) {
		t.Error("new session must be active")
	}
}

func TestAllowAccessResetsLockout(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 3, 10*time.Second)

	g.DenyAccess(t0)
	g.DenyAccess(t0)
	if g.FailedAttemptCount() != 2 {
		t.Fatalf("FailedAttemptCount() = %d, want 2", g.FailedAttemptCount())
	}

	if _, err := g.AllowAccess(t0.Add(time.Second)); err != nil {
		t.Fatalf("AllowAccess() error = %v", err)
	}
	if g.FailedAttemptCount() != 0 {
		t.Errorf("FailedAttemptCount() = %d, want 0 after grant", g.FailedAttemptCount())
	}
	if g.AccessDeniedAt() != nil {
		t.Error("denial timestamp must be cleared after grant")
	}
}

func TestDenyAccess(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 3, 10*time.Second)

	id, err := g.AllowAccess(t0)
	if err != nil {
		t.Fatalf("AllowAccess() error = %v", err)
	}

	g.DenyAccess(t0.Add(time.Second))
	if g.HasAccess(id, t0.Add(time.Second)) {
		t.Error("denial must discard the current session")
	}
	if g.FailedAttemptCount() != 1 {
		t.Errorf("FailedAttemptCount() = %d, want 1", g.FailedAttemptCount())
	}
	denied := g.AccessDeniedAt()
	if denied == nil || !denied.Equal(t0.Add(time.Second)) {
		t.Errorf("AccessDeniedAt() = %v, want %v", denied, t0.Add(time.Second))
	}
}

func TestIsAccessPossible(t *testing.T) {
	const maxAttempts = 3
	block := 10 * time.Second

	t.Run("denials below the limit do not block", func(t *testing.T) {
		g := newGatekeeper(t, time.Minute, maxAttempts, block)
		for i := 0; i < maxAttempts-1; i++ {
			g.DenyAccess(t0)
			if !g.IsAccessPossible(t0) {
				t.Fatalf("blocked after %d denials, limit is %d", i+1, maxAttempts)
			}
		}
	})

	t.Run("reaching the limit blocks until the window lifts", func(t *testing.T) {
		g := newGatekeeper(t, time.Minute, maxAttempts, block)
		for i := 0; i < maxAttempts; i++ {
			g.DenyAccess(t0)
		}
		if g.IsAccessPossible(t0) {
			t.Error("access must be blocked once attempts are exhausted")
		}
		if g.IsAccessPossible(t0.Add(block - time.Nanosecond)) {
			t.Error("access must stay blocked inside the window")
		}
		if !g.IsAccessPossible(t0.Add(block)) {
			t.Error("access must be possible exactly at the block lift time")
		}
	})

	t.Run("every denial refreshes the block window", func(t *testing.T) {
		g := newGatekeeper(t, time.Minute, maxAttempts, block)
		for i := 0; i < maxAttempts; i++ {
			g.DenyAccess(t0)
		}
		later := t0.Add(5 * time.Second)
		g.DenyAccess(later)
		if g.IsAccessPossible(t0.Add(block)) {
			t.Error("window must be measured from the most recent denial")
		}
		if !g.IsAccessPossible(later.Add(block)) {
			t.Error("access must lift a full window after the last denial")
		}
	})
}

func TestAllowAccessWhenBlocked(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 1, 10*time.Second)
	g.DenyAccess(t0)

	if _, err := g.AllowAccess(t0.Add(time.Second)); !errors.Is(err, ErrAccessBlocked) {
		t.Errorf("AllowAccess() while blocked error = %v, want %v", err, ErrAccessBlocked)
	}

	// After the block window the grant goes through.
	if _, err := g.AllowAccess(t0.Add(10 * time.Second)); err != nil {
		t.Errorf("AllowAccess() after block lift error = %v", err)
	}
}

func TestUseAccess(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 3, 10*time.Second)

	// No session to renew.
	if err := g.UseAccess(t0); !errors.Is(err, session.ErrSessionIsNotActive) {
		t.Errorf("UseAccess() without session error = %v, want %v", err, session.ErrSessionIsNotActive)
	}

	id, err := g.AllowAccess(t0)
	if err != nil {
		t.Fatalf("AllowAccess() error = %v", err)
	}

	// Renewal extends the window past the original expiry.
	renewAt := t0.Add(30 * time.Second)
	if err := g.UseAccess(renewAt); err != nil {
		t.Fatalf("UseAccess() error = %v", err)
	}
	if !g.HasAccess(id, renewAt.Add(time.Minute)) {
		t.Error("renewed session must be active until renewal + duration")
	}

	// Renewal of an expired session fails.
	if err := g.UseAccess(renewAt.Add(2 * time.Minute)); !errors.Is(err, session.ErrSessionIsNotActive) {
		t.Errorf("UseAccess() on expired session error = %v, want %v", err, session.ErrSessionIsNotActive)
	}

	// Blocked gatekeeper rejects use.
	g2 := newGatekeeper(t, time.Minute, 1, time.Hour)
	g2.DenyAccess(t0)
	if err := g2.UseAccess(t0.Add(time.Second)); !errors.Is(err, ErrAccessBlocked) {
		t.Errorf("UseAccess() while blocked error = %v, want %v", err, ErrAccessBlocked)
	}
}

func TestEndAccess(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 3, 10*time.Second)

	if err := g.EndAccess(t0); !errors.Is(err, session.ErrSessionIsNotActive) {
		t.Errorf("EndAccess() without session error = %v, want %v", err, session.ErrSessionIsNotActive)
	}

	id, err := g.AllowAccess(t0)
	if err != nil {
		t.Fatalf("AllowAccess() error = %v", err)
	}
	if err := g.EndAccess(t0.Add(time.Second)); err != nil {
		t.Fatalf("EndAccess() error = %v", err)
	}
	if g.HasAccess(id, t0.Add(time.Second)) {
		t.Error("finished session must not grant access")
	}
}

func TestHasAccess(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 3, 10*time.Second)

	if g.HasAccess(session.GenerateID(), t0) {
		t.Error("HasAccess() must be false with no session")
	}

	id, err := g.AllowAccess(t0)
	if err != nil {
		t.Fatalf("AllowAccess() error = %v", err)
	}
	if g.HasAccess(session.GenerateID(), t0) {
		t.Error("HasAccess() must be false for a foreign session ID")
	}
	if g.HasAccess(id, t0.Add(2*time.Minute)) {
		t.Error("HasAccess() must be false after expiry")
	}
}

func TestPolicyChangeResets(t *testing.T) {
	tests := []struct {
		name   string
		change func(*Gatekeeper) error
	}{
		{
			name:   "session duration",
			change: func(g *Gatekeeper) error { return g.ChangeSessionDuration(2 * time.Minute) },
		},
		{
			name:   "max failed attempts",
			change: func(g *Gatekeeper) error { return g.ChangeMaxFailedAttempts(10) },
		},
		{
			name:   "block duration",
			change: func(g *Gatekeeper) error { return g.ChangeBlockDuration(time.Hour) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGatekeeper(t, time.Minute, 3, 10*time.Second)
			id, err := g.AllowAccess(t0)
			if err != nil {
				t.Fatalf("AllowAccess() error = %v", err)
			}
			g.DenyAccess(t0.Add(time.Second))

			if err := tt.change(g); err != nil {
				t.Fatalf("change error = %v", err)
			}
			if g.HasAccess(id, t0.Add(time.Second)) {
				t.Error("policy change must invalidate the current session")
			}
			if g.FailedAttemptCount() != 0 {
				t.Errorf("FailedAttemptCount() = %d, want 0 after policy change", g.FailedAttemptCount())
			}
			if g.AccessDeniedAt() != nil {
				t.Error("denial timestamp must be cleared after policy change")
			}
		})
	}
}

func TestPolicyChangeInvalidValue(t *testing.T) {
	g := newGatekeeper(t, time.Minute, 3, 10*time.Second)
	id, err := g.AllowAccess(t0)
	if err != nil {
		t.Fatalf("AllowAccess() error = %v", err)
	}

	if err := g.ChangeSessionDuration(0); !errors.Is(err, policy.ErrInvalidPolicy) {
		t.Fatalf("ChangeSessionDuration(0) error = %v, want %v", err, policy.ErrInvalidPolicy)
	}
	// A rejected change must not reset anything.
	if !g.HasAccess(id, t0) {
		t.Error("failed policy change must leave the session intact")
	}
	if g.Policy().SessionDuration != time.Minute {
		t.Errorf("policy changed despite validation failure: %+v", g.Policy())
	}
}

func TestBlockedScenario(t *testing.T) {
	// Policy (sessionDuration=2s, maxFailedAttempts=2, blockDuration=1s):
	// two denials at t0 block access at t0 but not at t0+1s.
	g := newGatekeeper(t, 2*time.Second, 2, time.Second)

	g.DenyAccess(t0)
	g.DenyAccess(t0)
	if g.IsAccessPossible(t0) {
		t.Error("IsAccessPossible(t0) = true, want false")
	}
	if !g.IsAccessPossible(t0.Add(time.Second)) {
		t.Error("IsAccessPossible(t0+1s) = false, want true")
	}

	if _, err := g.AllowAccess(t0.Add(time.Second)); err != nil {
		t.Fatalf("AllowAccess() error = %v", err)
	}
	if g.FailedAttemptCount() != 0 {
		t.Errorf("FailedAttemptCount() = %d, want 0", g.FailedAttemptCount())
	}
}

func TestRestore(t *testing.T) {
	p, err := policy.New(time.Minute, 3, 10*time.Second)
	if err != nil {
		t.Fatalf("policy.New() error = %v", err)
	}
	started := t0
	sess, err := session.Restore(session.GenerateID(), time.Minute, &started, nil, nil)
	if err != nil {
		t.Fatalf("session.Restore() error = %v", err)
	}
	denied := t0.Add(-time.Hour)

	g := Restore(GenerateID(), sess, p, 2, &denied)
	if g.FailedAttemptCount() != 2 {
		t.Errorf("FailedAttemptCount() = %d, want 2", g.FailedAttemptCount())
	}
	if !g.HasAccess(sess.ID(), t0.Add(30*time.Second)) {
		t.Error("restored session must still be honored")
	}
	if !g.IsAccessPossible(t0) {
		t.Error("two denials under a limit of three must not block")
	}
}

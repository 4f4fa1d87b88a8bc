// Package service contains the application services coordinating the
// authentication domain with its outbound ports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wallet-guard/walletguard/internal/domain/audit"
	"github.com/wallet-guard/walletguard/internal/domain/gatekeeper"
	"github.com/wallet-guard/walletguard/internal/domain/policy"
	"github.com/wallet-guard/walletguard/internal/domain/session"
	"github.com/wallet-guard/walletguard/internal/domain/user"
	"github.com/wallet-guard/walletguard/internal/port/outbound"
)

// IdentityService errors.
var (
	ErrUserAlreadyRegistered = errors.New("user already registered")
	ErrEmptyPassword         = errors.New("password must not be empty")
)

// UserDescriptor identifies the authenticated user and the session issued
// for this authentication.
type UserDescriptor struct {
	UserID    user.ID
	SessionID session.ID
}

// IdentityService orchestrates registration and authentication. It holds no
// persistent state of its own: every operation loads its collaborators'
// records, applies the gatekeeper decision, and persists the result.
//
// The gatekeeper record is updated read-modify-write, so the whole gating
// procedure runs under one mutex: two simultaneous failed attempts must both
// be recorded, not clobber each other.
type IdentityService struct {
	clock       outbound.Clock
	encryptor   outbound.Encryptor
	biometry    outbound.BiometricAuthenticator
	users       user.Repository
	gatekeepers gatekeeper.Repository
	logger      *slog.Logger
	metrics     *Metrics
	audit       *AuditService
	mu          sync.Mutex // serializes gatekeeper load-check-act-save
}

// IdentityOption configures optional IdentityService collaborators.
type IdentityOption func(*IdentityService)

// WithMetrics attaches Prometheus metrics recording.
func WithMetrics(m *Metrics) IdentityOption {
	return func(s *IdentityService) {
		s.metrics = m
	}
}

// WithAudit attaches the asynchronous audit trail.
func WithAudit(a *AuditService) IdentityOption {
	return func(s *IdentityService) {
		s.audit = a
	}
}

// NewIdentityService creates a new IdentityService with explicit dependencies.
func NewIdentityService(
	clock outbound.Clock,
	encryptor outbound.Encryptor,
	biometry outbound.BiometricAuthenticator,
	users user.Repository,
	gatekeepers gatekeeper.Repository,
	logger *slog.Logger,
	opts ...IdentityOption,
) *IdentityService {
	s := &IdentityService{
		clock:       clock,
		encryptor:   encryptor,
		biometry:    biometry,
		users:       users,
		gatekeepers: gatekeepers,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProvisionGatekeeper constructs and persists a fresh gatekeeper with the
// given policy. Used once per device to seed the lockout subsystem.
func (s *IdentityService) ProvisionGatekeeper(ctx context.Context, sessionDuration time.Duration, maxFailedAttempts int, blockDuration time.Duration) (*gatekeeper.Gatekeeper, error) {
	p, err := policy.New(sessionDuration, maxFailedAttempts, blockDuration)
	if err != nil {
		return nil, err
	}
	g := gatekeeper.New(s.gatekeepers.NextID(), p)
	if err := s.gatekeepers.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save gatekeeper: %w", err)
	}
	s.logger.Info("gatekeeper provisioned",
		"session_duration", sessionDuration,
		"max_failed_attempts", maxFailedAttempts,
		"block_duration", blockDuration)
	return g, nil
}

// RegisterUser registers the primary user. The password is encrypted before
// it reaches the user entity; registering activates biometric authentication
// as a side effect.
func (s *IdentityService) RegisterUser(ctx context.Context, password string) (*user.User, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	existing, err := s.users.PrimaryUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("load primary user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyRegistered
	}

	u := user.New(s.users.NextID(), s.encryptor.Encrypt(password))
	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	if err := s.biometry.Activate(ctx); err != nil {
		return nil, fmt.Errorf("activate biometry: %w", err)
	}

	s.logger.Info("user registered", "user", audit.Fingerprint(u.ID().String()))
	s.record(ctx, audit.Record{
		Timestamp:       s.clock.Now().UTC(),
		EventType:       audit.EventTypeRegister,
		UserFingerprint: audit.Fingerprint(u.ID().String()),
	})
	return u, nil
}

// AuthenticateUser attempts password authentication. A nil descriptor with a
// nil error means the attempt failed or the gatekeeper is blocked; the caller
// can present a generic "try again later" message either way.
func (s *IdentityService) AuthenticateUser(ctx context.Context, password string) (*UserDescriptor, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	return s.authenticate(ctx, audit.MethodPassword, func(ctx context.Context) (*user.User, error) {
		return s.users.UserByEncryptedPassword(ctx, s.encryptor.Encrypt(password))
	})
}

// AuthenticateUserBiometrically attempts biometric authentication. A dismissed
// or failed prompt counts as a denial, exactly like a wrong password.
func (s *IdentityService) AuthenticateUserBiometrically(ctx context.Context) (*UserDescriptor, error) {
	return s.authenticate(ctx, audit.MethodBiometric, func(ctx context.Context) (*user.User, error) {
		ok, err := s.biometry.Authenticate(ctx)
		if err != nil {
			return nil, fmt.Errorf("biometric authentication: %w", err)
		}
		if !ok {
			return nil, nil
		}
		return s.users.PrimaryUser(ctx)
	})
}

// authenticate is the shared gating procedure. The credential check runs only
// when the gatekeeper permits an attempt; its outcome is then recorded as a
// grant or a denial and the gatekeeper persisted.
func (s *IdentityService) authenticate(ctx context.Context, method string, check func(context.Context) (*user.User, error)) (*UserDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gatekeepers.Gatekeeper(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !g.IsAccessPossible(now) {
		s.logger.Warn("authentication attempt while blocked", "method", method)
		s.observe(audit.EventTypeBlocked, method)
		s.record(ctx, audit.Record{
			Timestamp:      now.UTC(),
			EventType:      audit.EventTypeBlocked,
			Method:         method,
			FailedAttempts: g.FailedAttemptCount(),
			Reason:         "lockout in effect",
		})
		return nil, nil
	}

	u, err := check(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		g.DenyAccess(now)
		if err := s.gatekeepers.Save(ctx, g); err != nil {
			return nil, fmt.Errorf("save gatekeeper: %w", err)
		}
		s.logger.Info("authentication denied", "method", method, "failed_attempts", g.FailedAttemptCount())
		s.observe(audit.EventTypeDeny, method)
		s.record(ctx, audit.Record{
			Timestamp:      now.UTC(),
			EventType:      audit.EventTypeDeny,
			Method:         method,
			FailedAttempts: g.FailedAttemptCount(),
		})
		return nil, nil
	}

	sessionID, err := g.AllowAccess(now)
	if err != nil {
		return nil, err
	}
	if err := s.gatekeepers.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save gatekeeper: %w", err)
	}
	u.AttachSession(sessionID)
	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logger.Info("authentication succeeded",
		"method", method,
		"user", audit.Fingerprint(u.ID().String()),
		"session", audit.Fingerprint(sessionID.String()))
	s.observe(audit.EventTypeAllow, method)
	if s.metrics != nil {
		s.metrics.SessionActive.Set(1)
	}
	s.record(ctx, audit.Record{
		Timestamp:          now.UTC(),
		EventType:          audit.EventTypeAllow,
		Method:             method,
		UserFingerprint:    audit.Fingerprint(u.ID().String()),
		SessionFingerprint: audit.Fingerprint(sessionID.String()),
	})
	return &UserDescriptor{UserID: u.ID(), SessionID: sessionID}, nil
}

// Now returns the current time as seen by the service clock.
func (s *IdentityService) Now() time.Time {
	return s.clock.Now()
}

// IsUserAuthenticated reports whether the primary user's attached session is
// honored by the gatekeeper at the given time.
func (s *IdentityService) IsUserAuthenticated(ctx context.Context, at time.Time) bool {
	g, err := s.gatekeepers.Gatekeeper(ctx)
	if err != nil {
		return false
	}
	u, err := s.users.PrimaryUser(ctx)
	if err != nil || u == nil || u.SessionID() == nil {
		return false
	}
	return g.HasAccess(*u.SessionID(), at)
}

// IsUserRegistered reports whether a primary user exists.
func (s *IdentityService) IsUserRegistered(ctx context.Context) bool {
	u, err := s.users.PrimaryUser(ctx)
	return err == nil && u != nil
}

// IsAuthenticationBlocked reports whether the gatekeeper currently refuses attempts.
func (s *IdentityService) IsAuthenticationBlocked(ctx context.Context) bool {
	g, err := s.gatekeepers.Gatekeeper(ctx)
	if err != nil {
		return false
	}
	return !g.IsAccessPossible(s.clock.Now())
}

// Policy returns the provisioned gatekeeper's authentication policy.
func (s *IdentityService) Policy(ctx context.Context) (policy.AuthenticationPolicy, error) {
	g, err := s.gatekeepers.Gatekeeper(ctx)
	if err != nil {
		return policy.AuthenticationPolicy{}, err
	}
	return g.Policy(), nil
}

// ExtendSession renews the current session without re-authenticating.
func (s *IdentityService) ExtendSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gatekeepers.Gatekeeper(ctx)
	if err != nil {
		return err
	}
	if err := g.UseAccess(s.clock.Now()); err != nil {
		return err
	}
	if err := s.gatekeepers.Save(ctx, g); err != nil {
		return fmt.Errorf("save gatekeeper: %w", err)
	}
	return nil
}

// Logout finishes the current session. Returns
// session.ErrSessionIsNotActive when there is nothing to finish.
func (s *IdentityService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gatekeepers.Gatekeeper(ctx)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	if err := g.EndAccess(now); err != nil {
		return err
	}
	if err := s.gatekeepers.Save(ctx, g); err != nil {
		return fmt.Errorf("save gatekeeper: %w", err)
	}
	s.logger.Info("session finished")
	if s.metrics != nil {
		s.metrics.SessionActive.Set(0)
	}
	s.record(ctx, audit.Record{Timestamp: now.UTC(), EventType: audit.EventTypeLogout})
	return nil
}

// ResetGatekeeper discards the current session and lockout state.
// Administrative operation.
func (s *IdentityService) ResetGatekeeper(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gatekeepers.Gatekeeper(ctx)
	if err != nil {
		return err
	}
	g.Reset()
	if err := s.gatekeepers.Save(ctx, g); err != nil {
		return fmt.Errorf("save gatekeeper: %w", err)
	}
	now := s.clock.Now()
	s.logger.Info("gatekeeper reset")
	if s.metrics != nil {
		s.metrics.SessionActive.Set(0)
	}
	s.record(ctx, audit.Record{Timestamp: now.UTC(), EventType: audit.EventTypeReset})
	return nil
}

// observe records an attempt outcome in the metrics, when attached.
func (s *IdentityService) observe(eventType, method string) {
	if s.metrics == nil {
		return
	}
	s.metrics.AuthAttemptsTotal.WithLabelValues(method, eventType).Inc()
}

// record appends to the audit trail, when attached.
func (s *IdentityService) record(ctx context.Context, rec audit.Record) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, rec)
}

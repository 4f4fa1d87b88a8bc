package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	auditfile "github.com/wallet-guard/walletguard/internal/adapter/outbound/audit"
	"github.com/wallet-guard/walletguard/internal/adapter/outbound/biometry"
	"github.com/wallet-guard/walletguard/internal/adapter/outbound/clock"
	"github.com/wallet-guard/walletguard/internal/adapter/outbound/crypto"
	"github.com/wallet-guard/walletguard/internal/adapter/outbound/memory"
	"github.com/wallet-guard/walletguard/internal/adapter/outbound/sqlite"
	"github.com/wallet-guard/walletguard/internal/config"
	"github.com/wallet-guard/walletguard/internal/domain/audit"
	"github.com/wallet-guard/walletguard/internal/domain/gatekeeper"
	"github.com/wallet-guard/walletguard/internal/domain/user"
	"github.com/wallet-guard/walletguard/internal/service"
)

// app bundles the wired components a CLI command needs.
// Close must be called when the command is done.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	identity *service.IdentityService

	db       *sql.DB
	auditSvc *service.AuditService
	cancel   context.CancelFunc
}

// newApp loads configuration and wires storage, audit, metrics, and the
// identity service. The CLI has no biometric hardware, so biometry is wired
// as unavailable; biometric flows are exercised through the library API.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	if file := config.ConfigFileUsed(); file != "" {
		logger.Debug("loaded config", "file", file)
	}

	a := &app{cfg: cfg, logger: logger}

	var users user.Repository
	var gatekeepers gatekeeper.Repository
	switch cfg.Storage.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
		users = sqlite.NewUserStore(db)
		gatekeepers = sqlite.NewGatekeeperStore(db)
	case "memory":
		users = memory.NewUserStore()
		gatekeepers = memory.NewGatekeeperStore()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	var auditStore audit.Store
	if dir := cfg.AuditFileDir(); dir != "" {
		fs, err := auditfile.NewFileStore(auditfile.FileConfig{
			Dir:           dir,
			RetentionDays: cfg.Audit.RetentionDays,
		}, logger)
		if err != nil {
			a.closePartial()
			return nil, fmt.Errorf("failed to open audit store: %w", err)
		}
		auditStore = fs
	} else {
		auditStore = memory.NewAuditStoreWithWriter(os.Stdout)
	}

	reg := prometheus.NewRegistry()
	metrics := service.NewMetrics(reg)

	auditCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.auditSvc = service.NewAuditService(auditStore, logger,
		service.WithChannelSize(cfg.Audit.ChannelSize),
		service.WithBatchSize(cfg.Audit.BatchSize),
		service.WithFlushInterval(cfg.Audit.FlushInterval),
		service.WithAuditMetrics(metrics),
	)
	a.auditSvc.Start(auditCtx)

	a.identity = service.NewIdentityService(
		clock.NewSystemClock(),
		crypto.NewSHA256Encryptor(),
		biometry.NewUnavailable(),
		users,
		gatekeepers,
		logger,
		service.WithMetrics(metrics),
		service.WithAudit(a.auditSvc),
	)

	return a, nil
}

// Close flushes the audit trail and releases storage handles.
func (a *app) Close() {
	if a.auditSvc != nil {
		a.auditSvc.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.closePartial()
}

func (a *app) closePartial() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", "error", err)
		}
		a.db = nil
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

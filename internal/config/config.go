// Package config provides configuration types for Wallet Guard.
//
// Wallet Guard is a single-user, single-process authentication gatekeeper;
// the configuration covers the gatekeeper policy, the storage backend, and
// the audit trail. There is no network surface to configure.
package config

import (
	"time"
)

// Config is the top-level configuration for Wallet Guard.
type Config struct {
	// Gatekeeper configures the authentication policy used when the
	// gatekeeper is provisioned.
	Gatekeeper GatekeeperConfig `yaml:"gatekeeper" mapstructure:"gatekeeper"`

	// Storage configures where gatekeeper and user records are persisted.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Audit configures the authentication audit trail.
	Audit AuditConfig `yaml:"audit" mapstructure:"audit"`

	// LogLevel controls slog verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// GatekeeperConfig holds the authentication policy values.
type GatekeeperConfig struct {
	// SessionDuration is how long an access session stays valid without
	// renewal (e.g. "5m"). Must be positive.
	SessionDuration time.Duration `yaml:"session_duration" mapstructure:"session_duration" validate:"required,gt=0"`

	// MaxFailedAttempts is the number of failed attempts tolerated before
	// authentication is blocked. Must be positive.
	MaxFailedAttempts int `yaml:"max_failed_attempts" mapstructure:"max_failed_attempts" validate:"required,gt=0"`

	// BlockDuration is how long authentication stays blocked once attempts
	// are exhausted (e.g. "15s"). Zero disables the waiting period.
	BlockDuration time.Duration `yaml:"block_duration" mapstructure:"block_duration" validate:"gte=0"`
}

// StorageConfig configures persistence.
type StorageConfig struct {
	// Driver selects the backend: "sqlite" (durable) or "memory" (volatile).
	Driver string `yaml:"driver" mapstructure:"driver" validate:"required,oneof=sqlite memory"`

	// Path is the SQLite database file. Required for the sqlite driver.
	Path string `yaml:"path" mapstructure:"path" validate:"required_if=Driver sqlite"`
}

// AuditConfig configures the audit trail.
type AuditConfig struct {
	// Output specifies where audit records are written.
	// Valid values: "stdout" or "file://<absolute-directory>".
	Output string `yaml:"output" mapstructure:"output" validate:"required,audit_output"`

	// RetentionDays is the number of days to keep audit files (file output only).
	RetentionDays int `yaml:"retention_days" mapstructure:"retention_days" validate:"omitempty,min=1"`

	// ChannelSize is the buffer size for the async audit channel.
	ChannelSize int `yaml:"channel_size" mapstructure:"channel_size" validate:"omitempty,min=1"`

	// BatchSize is the number of records to batch before writing.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size" validate:"omitempty,min=1"`

	// FlushInterval is how often to flush pending records (e.g. "1s").
	FlushInterval time.Duration `yaml:"flush_interval" mapstructure:"flush_interval" validate:"omitempty,gt=0"`
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Gatekeeper.SessionDuration == 0 {
		c.Gatekeeper.SessionDuration = 5 * time.Minute
	}
	if c.Gatekeeper.MaxFailedAttempts == 0 {
		c.Gatekeeper.MaxFailedAttempts = 5
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		c.Storage.Path = "walletguard.db"
	}
	if c.Audit.Output == "" {
		c.Audit.Output = "stdout"
	}
	if c.Audit.RetentionDays == 0 {
		c.Audit.RetentionDays = 30
	}
	if c.Audit.ChannelSize == 0 {
		c.Audit.ChannelSize = 256
	}
	if c.Audit.BatchSize == 0 {
		c.Audit.BatchSize = 32
	}
	if c.Audit.FlushInterval == 0 {
		c.Audit.FlushInterval = time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Default returns a configuration with all defaults applied.
func Default() Config {
	var c Config
	c.SetDefaults()
	// Default lockout: a quarter minute cool-down after the attempts run out.
	c.Gatekeeper.BlockDuration = 15 * time.Second
	return c
}

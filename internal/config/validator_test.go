package config

import (
	"strings"
	"testing"
	"time"
)

// minimalValidConfig returns a minimal valid Config for testing.
func minimalValidConfig() *Config {
	return &Config{
		Gatekeeper: GatekeeperConfig{
			SessionDuration:   5 * time.Minute,
			MaxFailedAttempts: 5,
			BlockDuration:     15 * time.Second,
		},
		Storage: StorageConfig{Driver: "memory"},
		Audit:   AuditConfig{Output: "stdout"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_MissingSessionDuration(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	cfg.Gatekeeper.SessionDuration = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for zero session_duration")
	}
	if !strings.Contains(err.Error(), "SessionDuration") {
		t.Errorf("error = %q, want mention of SessionDuration", err)
	}
}

func TestValidate_NegativeBlockDuration(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	cfg.Gatekeeper.BlockDuration = -time.Second

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for negative block_duration")
	}
}

func TestValidate_UnknownStorageDriver(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	cfg.Storage.Driver = "postgres"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for unknown storage driver")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("error = %q, want oneof message", err)
	}
}

func TestValidate_SQLiteRequiresPath(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.Path = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for sqlite driver without path")
	}
}

func TestValidateAuditOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		valid  bool
	}{
		{"stdout", "stdout", true},
		{"absolute file path", "file:///var/log/walletguard", true},
		{"relative file path", "file://logs/audit", false},
		{"empty file path", "file://", false},
		{"bare path", "/var/log/walletguard", false},
		{"stderr not supported", "stderr", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := minimalValidConfig()
			cfg.Audit.Output = tt.output

			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() with output %q unexpected error: %v", tt.output, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Validate() with output %q expected error", tt.output)
			}
		})
	}
}

func TestAuditFileDir(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	if got := cfg.AuditFileDir(); got != "" {
		t.Errorf("AuditFileDir() = %q, want empty for stdout", got)
	}

	cfg.Audit.Output = "file:///var/log/walletguard"
	if got := cfg.AuditFileDir(); got != "/var/log/walletguard" {
		t.Errorf("AuditFileDir() = %q, want /var/log/walletguard", got)
	}
}

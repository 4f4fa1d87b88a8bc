// Package audit provides file-based audit persistence with JSON Lines format,
// daily rotation and retention cleanup.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/wallet-guard/walletguard/internal/domain/audit"
)

// auditFilePattern matches audit log filenames: audit-YYYY-MM-DD.log
var auditFilePattern = regexp.MustCompile(`^audit-(\d{4}-\d{2}-\d{2})\.log$`)

// FileConfig holds configuration for the file-based audit store.
type FileConfig struct {
	// Dir is the directory where audit files are stored.
	Dir string
	// RetentionDays is the number of days to keep audit files (default 30).
	RetentionDays int
}

// FileStore implements audit.Store with daily file rotation and retention.
type FileStore struct {
	dir           string
	retentionDays int
	currentFile   *os.File
	currentDate   string
	mu            sync.Mutex
	logger        *slog.Logger
	closed        bool
}

// NewFileStore creates a new file-based audit store. It creates the directory
// if needed, opens today's log file, and runs retention cleanup once.
func NewFileStore(cfg FileConfig, logger *slog.Logger) (*FileStore, error) {
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}

	s := &FileStore{
		dir:           cfg.Dir,
		retentionDays: cfg.RetentionDays,
		logger:        logger,
	}
	if err := s.openFileLocked(time.Now().UTC().Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}
	s.runCleanup()
	return s, nil
}

// Append stores audit records as JSON Lines in the current audit file,
// rotating when the record date changes.
func (s *FileStore) Append(_ context.Context, records ...audit.Record) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("audit store is closed")
	}

	for _, rec := range records {
		dateStr := rec.Timestamp.UTC().Format("2006-01-02")
		if dateStr != s.currentDate {
			if err := s.rotateLocked(dateStr); err != nil {
				return fmt.Errorf("date rotation: %w", err)
			}
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal audit record: %w", err)
		}
		if _, err := s.currentFile.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write audit record: %w", err)
		}
	}
	return nil
}

// Flush forces pending records to disk by syncing the current file.
func (s *FileStore) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentFile != nil {
		return s.currentFile.Sync()
	}
	return nil
}

// Close syncs and closes the current file. Safe to call once.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.currentFile != nil {
		_ = s.currentFile.Sync()
		return s.currentFile.Close()
	}
	return nil
}

// rotateLocked closes the current file and opens the file for the new date.
// Caller must hold s.mu.
func (s *FileStore) rotateLocked(date string) error {
	if s.currentFile != nil {
		_ = s.currentFile.Sync()
		_ = s.currentFile.Close()
	}
	if err := s.openFileLocked(date); err != nil {
		return err
	}
	s.runCleanup()
	return nil
}

func (s *FileStore) openFileLocked(date string) error {
	path := filepath.Join(s.dir, "audit-"+date+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	s.currentFile = f
	s.currentDate = date
	return nil
}

// runCleanup removes audit files older than the retention window.
func (s *FileStore) runCleanup() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("audit retention scan failed", "dir", s.dir, "error", err)
		return
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays).Format("2006-01-02")
	for _, entry := range entries {
		matches := auditFilePattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}
		if matches[1] < cutoff {
			path := filepath.Join(s.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.logger.Warn("failed to remove expired audit file", "path", path, "error", err)
			} else {
				s.logger.Info("removed expired audit file", "path", path)
			}
		}
	}
}

// Compile-time interface verification.
var _ audit.Store = (*FileStore)(nil)

package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/wallet-guard/walletguard/internal/domain/audit"
)

func TestAuditStore_AppendWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	store := NewAuditStoreWithWriter(&buf)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := store.Append(ctx,
		audit.Record{Timestamp: now, EventType: audit.EventTypeDeny, Method: audit.MethodPassword, FailedAttempts: 1},
		audit.Record{Timestamp: now, EventType: audit.EventTypeAllow, Method: audit.MethodPassword},
	)
	if err != nil {
		t.Fatalf("Append(): %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output lines = %d, want 2", len(lines))
	}
	var rec audit.Record
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if rec.EventType != audit.EventTypeDeny {
		t.Errorf("EventType = %q, want %q", rec.EventType, audit.EventTypeDeny)
	}
	if rec.FailedAttempts != 1 {
		t.Errorf("FailedAttempts = %d, want 1", rec.FailedAttempts)
	}
}

func TestAuditStore_RecentNewestFirst(t *testing.T) {
	store := NewAuditStoreWithWriter(&bytes.Buffer{})
	ctx := context.Background()

	types := []string{audit.EventTypeRegister, audit.EventTypeDeny, audit.EventTypeAllow}
	for _, et := range types {
		if err := store.Append(ctx, audit.Record{EventType: et}); err != nil {
			t.Fatalf("Append(%s): %v", et, err)
		}
	}

	recent := store.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Recent(2) = %d records, want 2", len(recent))
	}
	if recent[0].EventType != audit.EventTypeAllow || recent[1].EventType != audit.EventTypeDeny {
		t.Errorf("Recent(2) order = [%q %q], want newest first", recent[0].EventType, recent[1].EventType)
	}

	all := store.Recent(100)
	if len(all) != 3 {
		t.Errorf("Recent(100) = %d records, want 3", len(all))
	}
}

func TestAuditStore_FlushAndClose(t *testing.T) {
	store := NewAuditStore()

	if err := store.Flush(context.Background()); err != nil {
		t.Errorf("Flush(): %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close(): %v", err)
	}
}

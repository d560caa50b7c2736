package ledger

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakeScanner struct {
	values []any
}

func (f fakeScanner) Scan(dest ...any) error {
	if len(dest) != len(f.values) {
		return fmt.Errorf("expected %d destinations, got %d", len(f.values), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			p2, ok := f.values[i].(int64)
			if !ok {
				return fmt.Errorf("column %d: want int64", i)
			}
			*p = p2
		case *float64:
			p2, ok := f.values[i].(float64)
			if !ok {
				return fmt.Errorf("column %d: want float64", i)
			}
			*p = p2
		case *string:
			p2, ok := f.values[i].(string)
			if !ok {
				return fmt.Errorf("column %d: want string", i)
			}
			*p = p2
		default:
			return fmt.Errorf("column %d: unsupported destination %T", i, d)
		}
	}
	return nil
}

func TestScanEntryParsesTimestamp(t *testing.T) {
	recorded := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)
	entry, err := scanEntry(fakeScanner{values: []any{
		int64(7), "run-1", "/inbox/2024_01_01_00_00.txt", 1.5, recorded.Format(time.RFC3339Nano),
	}})
	if err != nil {
		t.Fatalf("scanEntry failed: %v", err)
	}
	if !entry.RecordedAt.Equal(recorded) {
		t.Fatalf("expected %v, got %v", recorded, entry.RecordedAt)
	}
	if entry.ID != 7 || entry.RunID != "run-1" || entry.Minutes != 1.5 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestScanEntryRejectsMalformedTimestamp(t *testing.T) {
	_, err := scanEntry(fakeScanner{values: []any{
		int64(1), "run-1", "/inbox/a", 0.5, "not-a-time",
	}})
	if err == nil {
		t.Fatal("expected error for malformed recorded_at")
	}
	if !strings.Contains(err.Error(), "recorded_at") {
		t.Fatalf("expected recorded_at in error, got %v", err)
	}
}

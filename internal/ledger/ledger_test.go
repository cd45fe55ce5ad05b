package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func tempLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "attendance.csv"))
}

func TestRecord_Bootstrap(t *testing.T) {
	l := tempLedger(t)

	when := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if err := l.Record("Alice", when); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		t.Fatalf("reading ledger file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "Name,Time" {
		t.Errorf("expected header 'Name,Time', got %q", lines[0])
	}
	if lines[1] != "Alice,2026-03-14 09:26:53" {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestRecord_Dedup(t *testing.T) {
	l := tempLedger(t)

	t1 := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(3 * time.Hour)
	if err := l.Record("Alice", t1); err != nil {
		t.Fatalf("first Record failed: %v", err)
	}
	if err := l.Record("Alice", t2); err != nil {
		t.Fatalf("second Record failed: %v", err)
	}

	records, err := l.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(records))
	}
	// The first timestamp wins.
	if records[0].Time != t1.Format(TimeFormat) {
		t.Errorf("expected first timestamp %q, got %q", t1.Format(TimeFormat), records[0].Time)
	}
}

func TestRecord_MultipleIdentitiesInOrder(t *testing.T) {
	l := tempLedger(t)

	base := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	for i, name := range []string{"Carol", "Alice", "Bob"} {
		if err := l.Record(name, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Record(%s) failed: %v", name, err)
		}
	}

	records, err := l.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"Carol", "Alice", "Bob"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, r := range records {
		if r.Name != want[i] {
			t.Errorf("record %d: expected %s, got %s", i, want[i], r.Name)
		}
	}
}

func TestList_MissingFile(t *testing.T) {
	l := tempLedger(t)

	records, err := l.List()
	if err != nil {
		t.Fatalf("expected no error for missing ledger, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty ledger, got %d records", len(records))
	}
}

func TestRecord_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.csv")

	if err := New(path).Record("Alice", time.Now()); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// A second Ledger over the same file still dedups.
	if err := New(path).Record("Alice", time.Now()); err != nil {
		t.Fatalf("Record on reopened ledger failed: %v", err)
	}

	records, err := New(path).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected one record after reopen, got %d", len(records))
	}
}

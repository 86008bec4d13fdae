package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func tempRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "donorlens.db")
	r, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRecord_AssignsIDAndTimestamp(t *testing.T) {
	r := tempRepo(t)

	entry := &CycleEntry{
		Tab:        "lifecycle",
		Status:     "ready",
		Queries:    4,
		DurationMs: 12,
	}

	if err := r.Record(entry); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecord_RoundTrip(t *testing.T) {
	r := tempRepo(t)

	want := CycleEntry{
		Timestamp:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Tab:           "cohorts",
		Organization:  "42",
		Sequence:      7,
		Status:        "ready",
		Queries:       2,
		FailedQueries: []string{"channels", "cohorts"},
		Synthetic:     true,
		DurationMs:    340,
	}
	entry := want
	if err := r.Record(&entry); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := r.List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if diff := cmp.Diff(want, got[0], cmpopts.IgnoreFields(CycleEntry{}, "ID")); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestList(t *testing.T) {
	r := tempRepo(t)

	for i := range 3 {
		entry := &CycleEntry{
			Tab:       "revenue",
			Status:    "ready",
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := r.Record(entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := r.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Timestamp.Before(entries[1].Timestamp) {
		t.Error("expected entries sorted by timestamp descending")
	}
}

func TestListByTab(t *testing.T) {
	r := tempRepo(t)

	entries := []*CycleEntry{
		{Tab: "lifecycle", Status: "ready"},
		{Tab: "campaigns", Status: "ready"},
		{Tab: "lifecycle", Status: "error", Message: "Organization ID not found"},
	}
	for _, entry := range entries {
		if err := r.Record(entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := r.ListByTab("lifecycle", 10)
	if err != nil {
		t.Fatalf("ListByTab failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	for _, entry := range got {
		if entry.Tab != "lifecycle" {
			t.Errorf("expected tab 'lifecycle', got %q", entry.Tab)
		}
	}
}

func TestPrune(t *testing.T) {
	r := tempRepo(t)

	oldEntry := &CycleEntry{
		Tab:       "cashflow",
		Status:    "ready",
		Timestamp: time.Now().UTC().Add(-48 * time.Hour),
	}
	recentEntry := &CycleEntry{
		Tab:       "cashflow",
		Status:    "ready",
		Timestamp: time.Now().UTC().Add(-1 * time.Hour),
	}

	if err := r.Record(oldEntry); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := r.Record(recentEntry); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	removed, err := r.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	remaining, err := r.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", len(remaining))
	}
}

package store_test

import (
	"path/filepath"
	"testing"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/store"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "salesboard.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertAndGetRun(t *testing.T) {
	s := newTestStore(t)

	run := &store.RunLog{
		ID:           "run-1",
		Platform:     "zepto",
		Filename:     "zepto_week44.xlsx",
		Sheet:        "Zepto Sales",
		TotalRows:    10,
		ImportedRows: 8,
		SkippedRows:  2,
		WeekCount:    2,
		SKUCount:     3,
		CityCount:    2,
		Diagnostics: []summary.SkipDiagnostic{
			{Row: 4, Reason: "missing city"},
			{Row: 7, Reason: `unparseable date "soon"`},
		},
	}
	if err := s.InsertRun(run); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	got, err := s.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatalf("GetRun returned nil")
	}
	if got.Platform != "zepto" || got.ImportedRows != 8 {
		t.Fatalf("got=%+v", got)
	}
	if len(got.Diagnostics) != 2 || got.Diagnostics[0].Row != 4 {
		t.Fatalf("Diagnostics=%v", got.Diagnostics)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
}

func TestGetRunMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetRun("nope")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Fatalf("got=%+v, want nil", got)
	}
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := s.InsertRun(&store.RunLog{ID: id, Platform: "blinkit", Filename: id + ".xlsx"}); err != nil {
			t.Fatalf("InsertRun(%s) failed: %v", id, err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs=%d, want 2", len(runs))
	}

	n, err := s.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("CountRuns=%d, want 3", n)
	}
}

func TestNewRejectsUnusablePath(t *testing.T) {
	// A directory where the database file should be: open fails and
	// New must return the error instead of a half-built store.
	if _, err := store.New(t.TempDir()); err == nil {
		t.Fatalf("New accepted a directory as the database path")
	}
}

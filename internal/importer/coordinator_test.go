package importer_test

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/config"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/importer"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/store"
)

func writeTestWorkbook(t *testing.T, dir, name, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("SetSheetName failed: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func collect(t *testing.T, events <-chan importer.ProgressEvent) []importer.ProgressEvent {
	t.Helper()
	var all []importer.ProgressEvent
	for e := range events {
		all = append(all, e)
	}
	if len(all) == 0 {
		t.Fatalf("no events received")
	}
	return all
}

func newCoordinator(t *testing.T) (*importer.Coordinator, *importer.Registry, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "salesboard.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	registry := importer.NewRegistry()
	return importer.NewCoordinator(config.DefaultConfig(), st, registry), registry, st
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	path := writeTestWorkbook(t, dir, "zepto_week44.xlsx", "Zepto Sales", [][]interface{}{
		{"SKU Name", "City", "Sales Date", "Quantity"},
		{"Milk", "Pune", "2024-10-28", 10},
		{"Milk", "Pune", "2024-10-30", 5},
		{"Bread", "Mumbai", "2024-11-04", 3},
		{"Eggs", "", "2024-11-04", 4},
	})

	coord, registry, st := newCoordinator(t)
	events := collect(t, coord.Process(importer.ProcessOptions{FilePath: path}))

	last := events[len(events)-1]
	if last.Type != "done" {
		t.Fatalf("last event=%+v, want done", last)
	}
	stats, ok := last.Data.(importer.RunStats)
	if !ok {
		t.Fatalf("done data=%T", last.Data)
	}
	if stats.Platform != "zepto" {
		t.Fatalf("Platform=%q, want detected zepto", stats.Platform)
	}
	if stats.ImportedRows != 3 || stats.SkippedRows != 1 {
		t.Fatalf("stats=%+v", stats)
	}

	run, ok := registry.Get(stats.RunID)
	if !ok {
		t.Fatalf("run %s not in registry", stats.RunID)
	}
	if got := run.Bundle.SKU["Milk"]["28-Oct - 3-Nov"]; got != 15 {
		t.Fatalf("Milk=%v, want 15", got)
	}
	if run.Records[0].Platform != "zepto" {
		t.Fatalf("records not platform-tagged: %+v", run.Records[0])
	}
	if run.Analytics == nil {
		t.Fatalf("analytics missing")
	}

	logged, err := st.GetRun(stats.RunID)
	if err != nil || logged == nil {
		t.Fatalf("run log row missing: %v", err)
	}
	if logged.SkippedRows != 1 || len(logged.Diagnostics) != 1 {
		t.Fatalf("logged=%+v", logged)
	}
}

func TestProcessSheetFallback(t *testing.T) {
	dir := t.TempDir()
	// Blinkit file with the data on a renamed sheet.
	path := writeTestWorkbook(t, dir, "blinkit_export.xlsx", "raw data", [][]interface{}{
		{"item_name", "city_name", "date", "qty"},
		{"Milk", "Pune", "2024-10-28", 5},
	})

	coord, _, _ := newCoordinator(t)
	events := collect(t, coord.Process(importer.ProcessOptions{FilePath: path, Platform: "blinkit"}))

	last := events[len(events)-1]
	if last.Type != "done" {
		t.Fatalf("last event=%+v, want done", last)
	}
	stats := last.Data.(importer.RunStats)
	if stats.Sheet != "raw data" {
		t.Fatalf("Sheet=%q, want first-sheet fallback", stats.Sheet)
	}
}

func TestProcessSchemaError(t *testing.T) {
	dir := t.TempDir()
	// Zepto columns in a file processed as blinkit: schema mismatch.
	path := writeTestWorkbook(t, dir, "mislabeled.xlsx", "Blinkit Sales", [][]interface{}{
		{"SKU Name", "City", "Sales Date", "Quantity"},
		{"Milk", "Pune", "2024-10-28", 10},
	})

	coord, _, _ := newCoordinator(t)
	events := collect(t, coord.Process(importer.ProcessOptions{FilePath: path, Platform: "blinkit"}))

	last := events[len(events)-1]
	if last.Type != "error" {
		t.Fatalf("last event=%+v, want error", last)
	}
	data, ok := last.Data.(map[string]interface{})
	if !ok || data["kind"] != "schema" {
		t.Fatalf("error data=%v, want schema kind", last.Data)
	}
}

func TestProcessUnknownPlatform(t *testing.T) {
	dir := t.TempDir()
	path := writeTestWorkbook(t, dir, "sales.xlsx", "Zepto Sales", [][]interface{}{
		{"SKU Name", "City", "Sales Date", "Quantity"},
	})

	coord, _, _ := newCoordinator(t)
	events := collect(t, coord.Process(importer.ProcessOptions{FilePath: path, Platform: "swiggy"}))

	last := events[len(events)-1]
	if last.Type != "error" {
		t.Fatalf("last event=%+v, want error", last)
	}
}

// Config updates over the API can land while an upload is processing;
// the run must keep its own snapshot and never race the writer.
func TestProcessWithConcurrentConfigUpdate(t *testing.T) {
	dir := t.TempDir()
	path := writeTestWorkbook(t, dir, "zepto_week44.xlsx", "Zepto Sales", [][]interface{}{
		{"SKU Name", "City", "Sales Date", "Quantity"},
		{"Milk", "Pune", "2024-10-28", 10},
		{"Bread", "Mumbai", "2024-11-04", 3},
	})

	st, err := store.New(filepath.Join(t.TempDir(), "salesboard.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.DefaultConfig()
	coord := importer.NewCoordinator(cfg, st, importer.NewRegistry())

	update := map[string]config.PlatformConfig{
		"zepto": {Sheet: "Zepto Sales", SKUColumn: "SKU Name", CityColumn: "City", DateColumn: "Sales Date", QtyColumn: "Quantity", UnitPrice: 120},
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			cfg.Apply(update, nil)
		}
	}()

	events := collect(t, coord.Process(importer.ProcessOptions{FilePath: path}))
	<-done

	last := events[len(events)-1]
	if last.Type != "done" {
		t.Fatalf("last event=%+v, want done", last)
	}
	stats := last.Data.(importer.RunStats)
	if stats.ImportedRows != 2 {
		t.Fatalf("stats=%+v", stats)
	}
}

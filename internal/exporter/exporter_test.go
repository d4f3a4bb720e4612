package exporter_test

import (
	"testing"
	"time"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/analytics"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/exporter"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

func testBundle(t *testing.T) (*summary.Bundle, []summary.Record) {
	t.Helper()

	mk := func(sku, city string, d time.Time, qty float64) summary.Record {
		return summary.Record{
			Platform: "zepto",
			SKU:      sku,
			City:     city,
			Date:     d,
			Week:     summary.WeekLabel(d),
			Quantity: qty,
		}
	}
	records := []summary.Record{
		mk("Milk", "Pune", time.Date(2024, time.October, 28, 0, 0, 0, 0, time.UTC), 10),
		mk("Milk", "Pune", time.Date(2024, time.October, 30, 0, 0, 0, 0, time.UTC), 5),
		mk("Bread", "Mumbai", time.Date(2024, time.November, 4, 0, 0, 0, 0, time.UTC), 3),
	}
	return summary.Assemble(records), records
}

func TestBuildWorkbook(t *testing.T) {
	bundle, records := testBundle(t)
	report := analytics.Analyze(records, analytics.DefaultOptions())

	f, err := exporter.BuildWorkbook(bundle, report)
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}
	defer f.Close()

	wantSheets := []string{
		exporter.SheetSKU,
		exporter.SheetCity,
		exporter.SheetSKUCity,
		exporter.SheetLowStock,
		exporter.SheetTopPerformers,
		exporter.SheetTrends,
		exporter.SheetCityPerformance,
		exporter.SheetRevenue,
	}
	have := map[string]bool{}
	for _, name := range f.GetSheetList() {
		have[name] = true
	}
	for _, name := range wantSheets {
		if !have[name] {
			t.Fatalf("missing sheet %q, have %v", name, f.GetSheetList())
		}
	}

	rows, err := f.GetRows(exporter.SheetSKU)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if rows[0][0] != "Item" {
		t.Fatalf("header=%v, want Item first", rows[0])
	}
	if rows[0][1] != "28-Oct - 3-Nov" || rows[0][2] != "4-Nov - 10-Nov" {
		t.Fatalf("week header=%v", rows[0])
	}

	// Rows in lexical key order: Bread before Milk.
	if rows[1][0] != "Bread" || rows[2][0] != "Milk" {
		t.Fatalf("row order=%v %v", rows[1], rows[2])
	}
	if rows[2][1] != "15" {
		t.Fatalf("Milk week1=%q, want 15", rows[2][1])
	}
	if rows[1][1] != "0" {
		t.Fatalf("Bread week1=%q, want dense 0", rows[1][1])
	}
}

func TestBuildWorkbookWithoutReport(t *testing.T) {
	bundle, _ := testBundle(t)

	f, err := exporter.BuildWorkbook(bundle, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}
	defer f.Close()

	if len(f.GetSheetList()) != 3 {
		t.Fatalf("sheets=%v, want exactly the three summaries", f.GetSheetList())
	}
}

func TestBuildWorkbookNilBundle(t *testing.T) {
	if _, err := exporter.BuildWorkbook(nil, nil); err == nil {
		t.Fatalf("expected error for nil bundle")
	}
}

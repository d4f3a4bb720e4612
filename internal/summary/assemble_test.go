package summary_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

func TestSummarize(t *testing.T) {
	rows := [][]string{
		{"SKU Name", "City", "Sales Date", "Quantity"},
		{"Milk", "Pune", "2024-10-28", "10"},
		{"Milk", "Pune", "2024-10-30", "5"},
		{"Bread", "Mumbai", "2024-11-04", "3"},
	}

	result, err := summary.Summarize(rows, zeptoColumns())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	b := result.Bundle
	if !reflect.DeepEqual(b.Weeks, []string{"28-Oct - 3-Nov", "4-Nov - 10-Nov"}) {
		t.Fatalf("Weeks=%v", b.Weeks)
	}
	if got := b.SKU["Milk"]["28-Oct - 3-Nov"]; got != 15 {
		t.Fatalf("Milk=%v, want 15", got)
	}
	if got := b.SKU["Bread"]["28-Oct - 3-Nov"]; got != 0 {
		t.Fatalf("Bread week1=%v, want 0 (dense fill)", got)
	}
	if got := b.City["Mumbai"]["4-Nov - 10-Nov"]; got != 3 {
		t.Fatalf("Mumbai=%v, want 3", got)
	}
	if got := b.SKUCity["Pune - Milk"]["28-Oct - 3-Nov"]; got != 15 {
		t.Fatalf("Pune - Milk=%v, want 15", got)
	}
	if len(result.Skipped) != 0 {
		t.Fatalf("Skipped=%v", result.Skipped)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	if _, err := summary.Summarize(nil, zeptoColumns()); !errors.Is(err, summary.ErrEmptyInput) {
		t.Fatalf("err=%v, want ErrEmptyInput", err)
	}

	headerOnly := [][]string{{"SKU Name", "City", "Sales Date", "Quantity"}}
	if _, err := summary.Summarize(headerOnly, zeptoColumns()); !errors.Is(err, summary.ErrEmptyInput) {
		t.Fatalf("err=%v, want ErrEmptyInput", err)
	}
}

func TestSummarizeSchemaErrorBeforeEmptyCheck(t *testing.T) {
	rows := [][]string{
		{"SKU Name", "City", "Sales Date"},
	}
	_, err := summary.Summarize(rows, zeptoColumns())

	var schemaErr *summary.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err=%v, want *SchemaError", err)
	}
}

func TestSummarizeNoValidData(t *testing.T) {
	rows := [][]string{
		{"SKU Name", "City", "Sales Date", "Quantity"},
		{"Milk", "Pune", "not-a-date", "10"},
		{"Bread", "Mumbai", "also bad", "3"},
	}

	_, err := summary.Summarize(rows, zeptoColumns())
	if !errors.Is(err, summary.ErrNoValidData) {
		t.Fatalf("err=%v, want ErrNoValidData", err)
	}
}

func TestSummarizeSkippedRowAbsentEverywhere(t *testing.T) {
	rows := [][]string{
		{"SKU Name", "City", "Sales Date", "Quantity"},
		{"Milk", "Pune", "2024-10-28", "10"},
		{"Eggs", "", "2024-10-28", "4"},
	}

	result, err := summary.Summarize(rows, zeptoColumns())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if _, ok := result.Bundle.SKU["Eggs"]; ok {
		t.Fatalf("skipped row leaked into SKU table")
	}
	for key := range result.Bundle.SKUCity {
		if key == " - Eggs" || key == "Eggs" {
			t.Fatalf("skipped row leaked into SKUCity table: %q", key)
		}
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Row != 3 {
		t.Fatalf("Skipped=%v, want row 3", result.Skipped)
	}
}

package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/analytics"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

// Sheet names in the downloadable report.
const (
	SheetSKU     = "SKU Summary"
	SheetCity    = "City Summary"
	SheetSKUCity = "SKU-City Summary"
)

// BuildWorkbook renders a summary bundle (and optional analytics
// report) as a downloadable workbook: one sheet per dimension with
// header ["Item", ...weeks], rows in lexical key order. Values are
// written as raw numbers; formatting belongs to whoever opens the file.
func BuildWorkbook(bundle *summary.Bundle, report *analytics.Report) (*excelize.File, error) {
	if bundle == nil {
		return nil, fmt.Errorf("bundle is nil")
	}

	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSKU); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeSummarySheet(f, SheetSKU, bundle.SKU, bundle.Weeks); err != nil {
		_ = f.Close()
		return nil, err
	}

	for _, s := range []struct {
		name  string
		table summary.SummaryTable
	}{
		{SheetCity, bundle.City},
		{SheetSKUCity, bundle.SKUCity},
	} {
		if _, err := f.NewSheet(s.name); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := writeSummarySheet(f, s.name, s.table, bundle.Weeks); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if report != nil {
		if err := writeAnalyticsSheets(f, report); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSummarySheet(f *excelize.File, sheet string, table summary.SummaryTable, weeks []string) error {
	header := make([]interface{}, 0, len(weeks)+1)
	header = append(header, "Item")
	for _, w := range weeks {
		header = append(header, w)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, key := range summary.SortedKeys(table) {
		row := make([]interface{}, 0, len(weeks)+1)
		row = append(row, key)
		for _, w := range weeks {
			row = append(row, table[key][w])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

package summary

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the formats excelize renders date cells as, plus
// the plain ISO forms the raw exports use.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"2-Jan-06",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate attempts to parse a date cell against the known layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseQuantity coerces a quantity cell to a number. Thousands
// separators are tolerated; anything unparseable coerces to 0, so a
// bad quantity never drops the row.
func ParseQuantity(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ValidateRows turns raw data rows (header excluded) into canonical
// records. Rows missing sku, city, or date, or whose date cell does not
// parse, are dropped with a diagnostic; fully empty rows are dropped
// silently. Input order is preserved.
func ValidateRows(rows [][]string, idx FieldIndex) ([]Record, []SkipDiagnostic) {
	records := make([]Record, 0, len(rows))
	var skipped []SkipDiagnostic

	getCell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for i, row := range rows {
		rowNo := i + 2

		if isEmptyRow(row) {
			continue
		}

		sku := getCell(row, idx.SKU)
		city := getCell(row, idx.City)
		dateCell := getCell(row, idx.Date)

		switch {
		case sku == "":
			skipped = append(skipped, SkipDiagnostic{Row: rowNo, Reason: "missing sku"})
			continue
		case city == "":
			skipped = append(skipped, SkipDiagnostic{Row: rowNo, Reason: "missing city"})
			continue
		case dateCell == "":
			skipped = append(skipped, SkipDiagnostic{Row: rowNo, Reason: "missing date"})
			continue
		}

		date, ok := ParseDate(dateCell)
		if !ok {
			skipped = append(skipped, SkipDiagnostic{Row: rowNo, Reason: fmt.Sprintf("unparseable date %q", dateCell)})
			continue
		}

		records = append(records, Record{
			SKU:      sku,
			City:     city,
			Date:     date,
			Week:     WeekLabel(date),
			Quantity: ParseQuantity(getCell(row, idx.Qty)),
		})
	}

	return records, skipped
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package summary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput reports an input batch with no data rows at all.
var ErrEmptyInput = errors.New("input has no data rows")

// ErrNoValidData reports a batch where rows existed but none survived
// validation.
var ErrNoValidData = errors.New("no valid rows after validation")

// MissingField names a canonical field that could not be resolved and
// the header name that was searched for.
type MissingField struct {
	Field    string `json:"field"`
	Expected string `json:"expected"`
}

// SchemaError is fatal for the run: one or more required columns were
// not found in the header row. It always carries the full list of
// missing fields, not just the first.
type SchemaError struct {
	Platform string
	Missing  []MissingField
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s (expected column %q)", m.Field, m.Expected))
	}
	return fmt.Sprintf("platform %s: missing required columns: %s", e.Platform, strings.Join(parts, ", "))
}

// SkipDiagnostic records one dropped data row. Row is 1-based counting
// the header as row 1, so the first data row is row 2.
type SkipDiagnostic struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

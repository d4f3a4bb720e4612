package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Workbook wraps an uploaded xlsx file for read access.
type Workbook struct {
	file   *excelize.File
	fileID string
}

// SheetInfo describes one worksheet.
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}

// Open loads a workbook from a reader.
func Open(reader io.Reader) (*Workbook, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	return &Workbook{file: file, fileID: uuid.New().String()}, nil
}

// OpenFile loads a workbook from disk.
func OpenFile(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	return &Workbook{file: file, fileID: uuid.New().String()}, nil
}

// FileID returns the id assigned to this upload.
func (w *Workbook) FileID() string {
	return w.fileID
}

// Sheets lists the worksheets with their row counts.
func (w *Workbook) Sheets() ([]SheetInfo, error) {
	if w.file == nil {
		return nil, errors.New("no file loaded")
	}

	names := w.file.GetSheetList()
	result := make([]SheetInfo, 0, len(names))
	for _, name := range names {
		rows, err := w.file.GetRows(name)
		if err != nil {
			continue
		}
		result = append(result, SheetInfo{Name: name, RowCount: len(rows)})
	}
	return result, nil
}

// ResolveSheet finds the sheet to read: the configured name when
// present (matched with trimming, then case-insensitively), otherwise
// the first sheet. Exports from the platforms frequently arrive with
// the data on a renamed first sheet.
func (w *Workbook) ResolveSheet(want string) (string, error) {
	if w.file == nil {
		return "", errors.New("no file loaded")
	}

	names := w.file.GetSheetList()
	if len(names) == 0 {
		return "", errors.New("workbook has no sheets")
	}

	want = strings.TrimSpace(want)
	if want != "" {
		for _, name := range names {
			if strings.TrimSpace(name) == want {
				return name, nil
			}
		}
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return name, nil
			}
		}
	}
	return names[0], nil
}

// Rows returns all rows of a sheet as formatted strings, header first.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	if w.file == nil {
		return nil, errors.New("no file loaded")
	}
	return w.file.GetRows(sheet)
}

// Preview returns the header row and up to limit data rows of a sheet,
// for the configuration/debug flow.
func (w *Workbook) Preview(sheet string, limit int) (header []string, rows [][]string, err error) {
	all, err := w.Rows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, errors.New("empty sheet")
	}

	header = all[0]
	end := limit + 1
	if end > len(all) {
		end = len(all)
	}
	if len(all) > 1 {
		rows = all[1:end]
	}
	return header, rows, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// DetectPlatform guesses the platform from filename and subject text.
// Falls back to zepto, as the deployed automation does.
func DetectPlatform(filename, subject string) string {
	text := strings.ToLower(filename + " " + subject)
	switch {
	case strings.Contains(text, "blinkit"):
		return "blinkit"
	case strings.Contains(text, "zepto"):
		return "zepto"
	default:
		return "zepto"
	}
}

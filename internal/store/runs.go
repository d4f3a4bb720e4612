package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

// RunLog is one processed-upload record.
type RunLog struct {
	ID           string                   `json:"id"`
	Platform     string                   `json:"platform"`
	Filename     string                   `json:"filename"`
	Sheet        string                   `json:"sheet"`
	TotalRows    int                      `json:"totalRows"`
	ImportedRows int                      `json:"importedRows"`
	SkippedRows  int                      `json:"skippedRows"`
	WeekCount    int                      `json:"weekCount"`
	SKUCount     int                      `json:"skuCount"`
	CityCount    int                      `json:"cityCount"`
	Diagnostics  []summary.SkipDiagnostic `json:"diagnostics"`
	CreatedAt    time.Time                `json:"createdAt"`
}

// InsertRun records a finished processing run.
func (s *Store) InsertRun(run *RunLog) error {
	diagnostics := run.Diagnostics
	if diagnostics == nil {
		diagnostics = []summary.SkipDiagnostic{}
	}
	diagJSON, err := json.Marshal(diagnostics)
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostics: %w", err)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (id, platform, filename, sheet, total_rows, imported_rows, skipped_rows,
		                  week_count, sku_count, city_count, diagnostics, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Platform, run.Filename, run.Sheet,
		run.TotalRows, run.ImportedRows, run.SkippedRows,
		run.WeekCount, run.SKUCount, run.CityCount,
		string(diagJSON), createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// GetRun loads one run by id.
func (s *Store) GetRun(id string) (*RunLog, error) {
	row := s.db.QueryRow(`
		SELECT id, platform, filename, sheet, total_rows, imported_rows, skipped_rows,
		       week_count, sku_count, city_count, diagnostics, created_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*RunLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, platform, filename, sheet, total_rows, imported_rows, skipped_rows,
		       week_count, sku_count, city_count, diagnostics, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunLog
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountRuns counts recorded runs.
func (s *Store) CountRuns() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*RunLog, error) {
	var run RunLog
	var diagJSON string
	err := row.Scan(
		&run.ID, &run.Platform, &run.Filename, &run.Sheet,
		&run.TotalRows, &run.ImportedRows, &run.SkippedRows,
		&run.WeekCount, &run.SKUCount, &run.CityCount,
		&diagJSON, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(diagJSON), &run.Diagnostics); err != nil {
		run.Diagnostics = nil
	}
	return &run, nil
}

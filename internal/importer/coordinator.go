package importer

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/analytics"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/config"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/parser"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/store"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

// Coordinator drives one upload through the pipeline: open workbook,
// resolve the sheet, map columns, validate, aggregate, run analytics,
// record the run.
type Coordinator struct {
	cfg      *config.AppConfig
	store    *store.Store
	registry *Registry
}

// NewCoordinator creates a coordinator.
func NewCoordinator(cfg *config.AppConfig, st *store.Store, registry *Registry) *Coordinator {
	return &Coordinator{cfg: cfg, store: st, registry: registry}
}

// ProcessOptions describes one upload to process.
type ProcessOptions struct {
	FilePath string
	Filename string
	// Platform selects the column configuration. Empty means detect
	// from the filename.
	Platform string
}

// ProgressEvent is one step of a processing run, streamed to the client
// as SSE.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/stage/done/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// RunStats summarizes a finished run for the done event.
type RunStats struct {
	RunID        string `json:"runId"`
	Platform     string `json:"platform"`
	Sheet        string `json:"sheet"`
	TotalRows    int    `json:"totalRows"`
	ImportedRows int    `json:"importedRows"`
	SkippedRows  int    `json:"skippedRows"`
	Weeks        int    `json:"weeks"`
	SKUs         int    `json:"skus"`
	Cities       int    `json:"cities"`
}

// Process runs the pipeline asynchronously and returns the progress
// channel. The channel is closed when the run finishes, after either a
// done or an error event.
func (c *Coordinator) Process(opts ProcessOptions) <-chan ProgressEvent {
	progress := make(chan ProgressEvent, 100)

	go func() {
		defer close(progress)
		c.doProcess(opts, progress)
	}()

	return progress
}

func (c *Coordinator) doProcess(opts ProcessOptions, progress chan ProgressEvent) {
	filename := opts.Filename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}

	send(progress, "start", fmt.Sprintf("processing %s", filename), nil)

	// One consistent view of the config for the whole run; API config
	// updates landing mid-run apply to the next upload.
	cfg := c.cfg.Snapshot()

	platform := opts.Platform
	if platform == "" {
		platform = parser.DetectPlatform(filename, "")
		send(progress, "stage", fmt.Sprintf("detected platform %s", platform), nil)
	}

	cols, err := cfg.Columns(platform)
	if err != nil {
		sendError(progress, err)
		return
	}
	platformCfg := cfg.Platforms[platform]

	wb, err := parser.OpenFile(opts.FilePath)
	if err != nil {
		sendError(progress, err)
		return
	}
	defer wb.Close()

	sheet, err := wb.ResolveSheet(platformCfg.Sheet)
	if err != nil {
		sendError(progress, err)
		return
	}
	send(progress, "stage", fmt.Sprintf("reading sheet %q", sheet), nil)

	rows, err := wb.Rows(sheet)
	if err != nil {
		sendError(progress, err)
		return
	}

	send(progress, "stage", "validating and aggregating", nil)
	result, err := summary.Summarize(rows, cols)
	if err != nil {
		sendError(progress, err)
		return
	}

	for i := range result.Records {
		result.Records[i].Platform = platform
	}

	send(progress, "stage", "running analytics", nil)
	report := analytics.Analyze(result.Records, analytics.Options{
		LowStockThreshold:     cfg.Analytics.LowStockThreshold,
		HighPriorityThreshold: cfg.Analytics.HighPriorityThreshold,
		TopPerformersCount:    cfg.Analytics.TopPerformersCount,
		UnitPrices:            cfg.UnitPrices(),
	})

	run := &RunResult{
		ID:        uuid.New().String(),
		Platform:  platform,
		Filename:  filename,
		Sheet:     sheet,
		Bundle:    result.Bundle,
		Records:   result.Records,
		Skipped:   result.Skipped,
		Analytics: report,
		CreatedAt: time.Now().UTC(),
	}
	c.registry.Put(run)

	if c.store != nil {
		logErr := c.store.InsertRun(&store.RunLog{
			ID:           run.ID,
			Platform:     platform,
			Filename:     filename,
			Sheet:        sheet,
			TotalRows:    len(rows) - 1,
			ImportedRows: len(result.Records),
			SkippedRows:  len(result.Skipped),
			WeekCount:    len(result.Bundle.Weeks),
			SKUCount:     len(result.Bundle.SKU),
			CityCount:    len(result.Bundle.City),
			Diagnostics:  result.Skipped,
			CreatedAt:    run.CreatedAt,
		})
		if logErr != nil {
			// The run itself succeeded; a failed log write is not fatal.
			log.Printf("failed to record run %s: %v", run.ID, logErr)
		}
	}

	send(progress, "done", "processing complete", RunStats{
		RunID:        run.ID,
		Platform:     platform,
		Sheet:        sheet,
		TotalRows:    len(rows) - 1,
		ImportedRows: len(result.Records),
		SkippedRows:  len(result.Skipped),
		Weeks:        len(result.Bundle.Weeks),
		SKUs:         len(result.Bundle.SKU),
		Cities:       len(result.Bundle.City),
	})
}

func send(progress chan ProgressEvent, eventType, message string, data interface{}) {
	progress <- ProgressEvent{
		Type:      eventType,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func sendError(progress chan ProgressEvent, err error) {
	data := map[string]interface{}{}

	var schemaErr *summary.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		data["kind"] = "schema"
		data["missing"] = schemaErr.Missing
	case errors.Is(err, summary.ErrEmptyInput):
		data["kind"] = "empty_input"
	case errors.Is(err, summary.ErrNoValidData):
		data["kind"] = "no_valid_data"
	}

	send(progress, "error", err.Error(), data)
}

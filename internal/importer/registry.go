package importer

import (
	"sync"
	"time"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/analytics"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

// RunResult is the in-memory outcome of one processed upload, kept for
// JSON retrieval and export until the process exits. Nothing here is
// persisted; the run log keeps metadata only.
type RunResult struct {
	ID        string                   `json:"id"`
	Platform  string                   `json:"platform"`
	Filename  string                   `json:"filename"`
	Sheet     string                   `json:"sheet"`
	Bundle    *summary.Bundle          `json:"bundle"`
	Records   []summary.Record         `json:"-"`
	Skipped   []summary.SkipDiagnostic `json:"skipped"`
	Analytics *analytics.Report        `json:"analytics"`
	CreatedAt time.Time                `json:"createdAt"`
}

// Registry holds finished runs keyed by run id.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]*RunResult
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[string]*RunResult)}
}

// Put stores a finished run.
func (r *Registry) Put(result *RunResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[result.ID] = result
}

// Get returns a run by id.
func (r *Registry) Get(id string) (*RunResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.runs[id]
	return result, ok
}

// Len reports how many runs are held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListRuns returns the recent run log, newest first.
// GET /api/runs
func (h *Handler) ListRuns(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetSummary returns a run's summary bundle plus skip diagnostics.
// GET /api/runs/:id/summary
func (h *Handler) GetSummary(c *gin.Context) {
	run, ok := h.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       run.ID,
		"platform": run.Platform,
		"filename": run.Filename,
		"sheet":    run.Sheet,
		"weeks":    run.Bundle.Weeks,
		"sku":      run.Bundle.SKU,
		"city":     run.Bundle.City,
		"skuCity":  run.Bundle.SKUCity,
		"skipped":  run.Skipped,
	})
}

// GetAnalytics returns a run's analytics report.
// GET /api/runs/:id/analytics
func (h *Handler) GetAnalytics(c *gin.Context) {
	run, ok := h.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run.Analytics)
}

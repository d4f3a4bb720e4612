package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports the service state.
type StatusResponse struct {
	Platforms  []string `json:"platforms"`
	ActiveRuns int      `json:"activeRuns"`
	TotalRuns  int      `json:"totalRuns"`
}

// GetStatus returns configured platforms and run counts.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	totalRuns, err := h.store.CountRuns()
	if err != nil {
		totalRuns = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		Platforms:  h.cfg.PlatformIDs(),
		ActiveRuns: h.registry.Len(),
		TotalRuns:  totalRuns,
	})
}

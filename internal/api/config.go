package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/config"
)

// ConfigResponse is the editable part of the configuration: platform
// column tables and analytics thresholds.
type ConfigResponse struct {
	Platforms map[string]config.PlatformConfig `json:"platforms"`
	Analytics config.AnalyticsConfig           `json:"analytics"`
}

// UpdateConfigRequest allows partial updates.
type UpdateConfigRequest struct {
	Platforms map[string]config.PlatformConfig `json:"platforms,omitempty"`
	Analytics *config.AnalyticsConfig          `json:"analytics,omitempty"`
}

// GetConfig returns the current configuration.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	snap := h.cfg.Snapshot()
	c.JSON(http.StatusOK, ConfigResponse{
		Platforms: snap.Platforms,
		Analytics: snap.Analytics,
	})
}

// UpdateConfig applies a partial configuration update and persists it.
// Platform entries are replaced whole; a platform absent from the
// request is left untouched.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.cfg.Apply(req.Platforms, req.Analytics)

	snap := h.cfg.Snapshot()
	if err := config.SaveConfig(snap); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save config"})
		return
	}

	c.JSON(http.StatusOK, ConfigResponse{
		Platforms: snap.Platforms,
		Analytics: snap.Analytics,
	})
}

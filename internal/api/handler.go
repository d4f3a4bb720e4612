package api

import (
	"github.com/gin-gonic/gin"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/config"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/importer"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/store"
)

// Handler wires the HTTP API to the processing pipeline.
type Handler struct {
	cfg        *config.AppConfig
	store      *store.Store
	registry   *importer.Registry
	downloads  *exportDownloadStore
	exportsDir string
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.AppConfig, st *store.Store, exportsDir string) *Handler {
	return &Handler{
		cfg:        cfg,
		store:      st,
		registry:   importer.NewRegistry(),
		downloads:  newExportDownloadStore(),
		exportsDir: exportsDir,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	router.POST("/process", h.Process)
	router.POST("/preview", h.Preview)

	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id/summary", h.GetSummary)
	router.GET("/runs/:id/analytics", h.GetAnalytics)
	router.POST("/runs/:id/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

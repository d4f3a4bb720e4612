package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/exporter"
)

const downloadTTL = 10 * time.Minute

// Export builds the downloadable workbook for a run and returns a
// one-time download token.
// POST /api/runs/:id/export
func (h *Handler) Export(c *gin.Context) {
	run, ok := h.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	f, err := exporter.BuildWorkbook(run.Bundle, run.Analytics)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to build workbook: %v", err)})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("sales_report_%s_%s.xlsx", run.Platform, time.Now().Format("20060102_150405"))
	filePath := filepath.Join(h.exportsDir, uuid.New().String()+".xlsx")

	if err := f.SaveAs(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save workbook"})
		return
	}

	token := h.downloads.put(filePath, filename, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filename,
		"url":      "/api/export/download/" + token,
	})
}

// DownloadExport streams a previously exported workbook by token. The
// token is single use and the file is removed once served.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	item, ok := h.downloads.take(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or not found"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.FileAttachment(item.filePath, item.filename)
	_ = os.Remove(item.filePath)
}

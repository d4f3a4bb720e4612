package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/importer"
)

// Process accepts an uploaded sales export and streams processing
// progress as SSE, ending in a done event carrying the run id.
// POST /api/process
func (h *Handler) Process(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	uploadedFile := files[0]

	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, fmt.Sprintf("salesboard_upload_%d_%s", time.Now().Unix(), filepath.Base(uploadedFile.Filename)))

	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}
	defer os.Remove(tempFilePath)

	platform := c.PostForm("platform")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	coordinator := importer.NewCoordinator(h.cfg, h.store, h.registry)
	progress := coordinator.Process(importer.ProcessOptions{
		FilePath: tempFilePath,
		Filename: uploadedFile.Filename,
		Platform: platform,
	})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	for event := range progress {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

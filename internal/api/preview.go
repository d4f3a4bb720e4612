package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/parser"
)

// PreviewResponse helps users line up their file with the platform
// configuration: sheet list, the sheet that would be read, its header
// and a few data rows.
type PreviewResponse struct {
	Platform      string             `json:"platform"`
	Sheets        []parser.SheetInfo `json:"sheets"`
	ResolvedSheet string             `json:"resolvedSheet"`
	Header        []string           `json:"header"`
	Rows          [][]string         `json:"rows"`
}

// Preview inspects an uploaded workbook without processing it.
// POST /api/preview
func (h *Handler) Preview(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	platform := c.PostForm("platform")
	if platform == "" {
		platform = parser.DetectPlatform(fileHeader.Filename, "")
	}
	platformCfg, ok := h.cfg.Platform(platform)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown platform " + platform})
		return
	}

	limit := 5
	if v := c.PostForm("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	wb, err := parser.Open(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer wb.Close()

	sheets, err := wb.Sheets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resolved, err := wb.ResolveSheet(platformCfg.Sheet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	header, rows, err := wb.Preview(resolved, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Platform:      platform,
		Sheets:        sheets,
		ResolvedSheet: resolved,
		Header:        header,
		Rows:          rows,
	})
}

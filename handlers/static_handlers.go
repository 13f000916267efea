package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/sheet_url_checker/static"
)

// StaticHandlers serves the landing page and favicon.
type StaticHandlers struct {
	indexPath string
}

// NewStaticHandlers serves indexPath as the landing page, or the embedded
// page when indexPath is empty.
func NewStaticHandlers(indexPath string) *StaticHandlers {
	return &StaticHandlers{indexPath: indexPath}
}

// IndexHandler serves the upload form.
func (h *StaticHandlers) IndexHandler(c *gin.Context) {
	if h.indexPath != "" {
		c.File(h.indexPath)
		return
	}
	page, err := static.Files.ReadFile("index.html")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "landing page unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// FaviconHandler answers favicon requests with no content so browsers stop asking.
func (h *StaticHandlers) FaviconHandler(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

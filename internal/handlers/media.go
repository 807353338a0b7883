package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bordamax/tienda-api/internal/models"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadMedia stores one file in the media library. The stored name is
// "<uuid>_<sanitized original>" so uploads can never collide or escape
// the upload directory.
func (h *Handler) UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	id := uuid.NewString()
	safe := unsafeFilename.ReplaceAllString(filepath.Base(file.Filename), "_")
	stored := fmt.Sprintf("%s_%s", id, safe)
	path := filepath.Join(h.Config.UploadDir, stored)

	if err := os.MkdirAll(h.Config.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}
	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	item := models.MediaItem{
		ID:         id,
		Name:       file.Filename,
		MimeType:   file.Header.Get("Content-Type"),
		Size:       file.Size,
		URL:        path,
		UploadedAt: time.Now(),
	}
	if err := h.DB.Create(&item).Error; err != nil {
		os.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListMedia returns the library, newest first.
func (h *Handler) ListMedia(c *gin.Context) {
	var items []models.MediaItem
	if err := h.DB.Order("uploaded_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load media"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ServeMedia streams one asset's bytes.
func (h *Handler) ServeMedia(c *gin.Context) {
	var item models.MediaItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}
	if item.MimeType != "" {
		c.Header("Content-Type", item.MimeType)
	}
	c.File(item.URL)
}

// DeleteMedia removes the row and the bytes. Referencing rows keep
// their id; consumers degrade gracefully on a dangling reference.
func (h *Handler) DeleteMedia(c *gin.Context) {
	var item models.MediaItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete media"})
		return
	}
	if strings.HasPrefix(item.URL, h.Config.UploadDir) {
		os.Remove(item.URL)
	}
	c.Status(http.StatusNoContent)
}

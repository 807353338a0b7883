package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bordamax/tienda-api/internal/auth"
	"github.com/bordamax/tienda-api/internal/models"
	"github.com/bordamax/tienda-api/internal/services"
)

// ListAddresses returns the user's saved delivery locations.
func (h *Handler) ListAddresses(c *gin.Context) {
	var addresses []models.Address
	err := h.DB.Where("user_id = ?", auth.UserIDFrom(c)).Order("is_default DESC, created_at").
		Find(&addresses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load addresses"})
		return
	}
	c.JSON(http.StatusOK, addresses)
}

type addressRequest struct {
	Line         string   `json:"line"`
	Unit         string   `json:"unit"`
	Instructions string   `json:"instructions"`
	IsDefault    bool     `json:"is_default"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
}

// CreateAddress saves a delivery location. When the client sends map
// coordinates but no street line, the line is reverse-geocoded.
func (h *Handler) CreateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Line == "" && (req.Lat == nil || req.Lon == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either line or coordinates are required"})
		return
	}

	addr := models.Address{
		UserID:       auth.UserIDFrom(c),
		Line:         req.Line,
		Unit:         req.Unit,
		Instructions: req.Instructions,
		IsDefault:    req.IsDefault,
		Lat:          req.Lat,
		Lon:          req.Lon,
	}
	h.enrichFromCoordinates(c.Request.Context(), &addr)

	if addr.IsDefault {
		h.DB.Model(&models.Address{}).Where("user_id = ?", addr.UserID).Update("is_default", false)
	}
	if err := h.DB.Create(&addr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save address"})
		return
	}
	c.JSON(http.StatusCreated, addr)
}

// UpdateAddress edits a saved location. Historical orders are
// unaffected since they snapshot address fields at checkout.
func (h *Handler) UpdateAddress(c *gin.Context) {
	var addr models.Address
	err := h.DB.Where("user_id = ?", auth.UserIDFrom(c)).First(&addr, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr.Line = req.Line
	addr.Unit = req.Unit
	addr.Instructions = req.Instructions
	addr.IsDefault = req.IsDefault
	addr.Lat = req.Lat
	addr.Lon = req.Lon
	h.enrichFromCoordinates(c.Request.Context(), &addr)

	if addr.IsDefault {
		h.DB.Model(&models.Address{}).
			Where("user_id = ? AND id <> ?", addr.UserID, addr.ID).
			Update("is_default", false)
	}
	if err := h.DB.Save(&addr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save address"})
		return
	}
	c.JSON(http.StatusOK, addr)
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	res := h.DB.Where("user_id = ?", auth.UserIDFrom(c)).
		Delete(&models.Address{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete address"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// enrichFromCoordinates fills the street line and navigation links when
// coordinates are present. Geocoding failures leave the address usable.
func (h *Handler) enrichFromCoordinates(ctx context.Context, addr *models.Address) {
	if addr.Lat == nil || addr.Lon == nil {
		return
	}
	addr.GoogleMapsURL, addr.WazeURL = services.MapLinks(*addr.Lat, *addr.Lon)

	if addr.Line != "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	result, err := h.Geocoder.Reverse(ctx, *addr.Lat, *addr.Lon)
	if err != nil {
		log.Printf("handlers: reverse geocode: %v", err)
		return
	}
	addr.Line = result.DisplayName
}

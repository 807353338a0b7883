package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bordamax/tienda-api/internal/models"
	"github.com/bordamax/tienda-api/internal/orderpdf"
)

// GetPdfConfig returns the document settings, seeding the singleton
// with defaults on first read.
func (h *Handler) GetPdfConfig(c *gin.Context) {
	cfg, err := h.loadPdfConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type pdfConfigRequest struct {
	LogoMediaID    *string `json:"logo_media_id"`
	CompanyName    string  `json:"company_name" binding:"required"`
	ContactPhone   string  `json:"contact_phone"`
	ContactEmail   string  `json:"contact_email"`
	Website        string  `json:"website"`
	CompanyAddress string  `json:"company_address"`
	FooterText     string  `json:"footer_text"`
	AccentColor    string  `json:"accent_color"`
}

// UpdatePdfConfig replaces the document settings.
func (h *Handler) UpdatePdfConfig(c *gin.Context) {
	var req pdfConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AccentColor != "" {
		if _, ok := orderpdf.ParseHexColor(req.AccentColor); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "accent_color must be a hex color like #1e3a8a"})
			return
		}
	}

	cfg, err := h.loadPdfConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document settings"})
		return
	}

	cfg.LogoMediaID = req.LogoMediaID
	cfg.CompanyName = req.CompanyName
	cfg.ContactPhone = req.ContactPhone
	cfg.ContactEmail = req.ContactEmail
	cfg.Website = req.Website
	cfg.CompanyAddress = req.CompanyAddress
	cfg.FooterText = req.FooterText
	cfg.AccentColor = req.AccentColor

	if err := h.DB.Save(cfg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save document settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) loadPdfConfig() (*models.PdfConfig, error) {
	var cfg models.PdfConfig
	err := h.DB.First(&cfg, "id = 1").Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = models.DefaultPdfConfig()
		if err := h.DB.Create(&cfg).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

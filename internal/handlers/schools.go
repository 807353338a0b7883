package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bordamax/tienda-api/internal/auth"
	"github.com/bordamax/tienda-api/internal/models"
)

// ListSchools returns every school ordered for the storefront picker.
func (h *Handler) ListSchools(c *gin.Context) {
	var schools []models.School
	if err := h.DB.Order("sort_order, name").Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load schools"})
		return
	}
	c.JSON(http.StatusOK, schools)
}

type schoolRequest struct {
	Name        string  `json:"name" binding:"required"`
	City        string  `json:"city"`
	LogoMediaID *string `json:"logo_media_id"`
	SortOrder   int     `json:"sort_order"`
}

func (h *Handler) CreateSchool(c *gin.Context) {
	var req schoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	school := models.School{
		Name:        req.Name,
		City:        req.City,
		LogoMediaID: req.LogoMediaID,
		SortOrder:   req.SortOrder,
	}
	if err := h.DB.Create(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create school"})
		return
	}
	c.JSON(http.StatusCreated, school)
}

func (h *Handler) UpdateSchool(c *gin.Context) {
	var school models.School
	if err := h.DB.First(&school, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
		return
	}

	var req schoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	school.Name = req.Name
	school.City = req.City
	school.LogoMediaID = req.LogoMediaID
	school.SortOrder = req.SortOrder
	if err := h.DB.Save(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update school"})
		return
	}
	c.JSON(http.StatusOK, school)
}

func (h *Handler) DeleteSchool(c *gin.Context) {
	res := h.DB.Delete(&models.School{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete school"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

type affiliationRequest struct {
	SchoolID uint `json:"school_id" binding:"required"`
}

// RequestAffiliation asks to join a school's price list. Re-requesting
// after a rejection reopens the same row.
func (h *Handler) RequestAffiliation(c *gin.Context) {
	var req affiliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFrom(c)

	var school models.School
	if err := h.DB.First(&school, "id = ?", req.SchoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
		return
	}

	var aff models.Affiliation
	err := h.DB.Where("user_id = ? AND school_id = ?", userID, req.SchoolID).First(&aff).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		aff = models.Affiliation{UserID: userID, SchoolID: req.SchoolID, Status: models.AffiliationRequested}
		if err := h.DB.Create(&aff).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to request affiliation"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to request affiliation"})
		return
	case aff.Status == models.AffiliationApproved:
		c.JSON(http.StatusConflict, gin.H{"error": "already affiliated"})
		return
	default:
		aff.Status = models.AffiliationRequested
		if err := h.DB.Save(&aff).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to request affiliation"})
			return
		}
	}
	c.JSON(http.StatusCreated, aff)
}

// ListAffiliations returns pending and resolved requests for staff.
func (h *Handler) ListAffiliations(c *gin.Context) {
	q := h.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var affs []models.Affiliation
	if err := q.Find(&affs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load affiliations"})
		return
	}
	c.JSON(http.StatusOK, affs)
}

type affiliationDecision struct {
	Status models.AffiliationStatus `json:"status" binding:"required"`
}

// DecideAffiliation approves or rejects a request. Approving also pins
// the school on the user's profile.
func (h *Handler) DecideAffiliation(c *gin.Context) {
	var req affiliationDecision
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.AffiliationApproved && req.Status != models.AffiliationRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
		return
	}

	var aff models.Affiliation
	if err := h.DB.First(&aff, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "affiliation not found"})
		return
	}

	aff.Status = req.Status
	if err := h.DB.Save(&aff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update affiliation"})
		return
	}

	if req.Status == models.AffiliationApproved {
		h.DB.Model(&models.UserProfile{}).Where("id = ?", aff.UserID).
			Update("school_id", aff.SchoolID)
	}
	c.JSON(http.StatusOK, aff)
}

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/bordamax/tienda-api/internal/auth"
	"github.com/bordamax/tienda-api/internal/models"
)

// catalogProduct is a Product with the price gated behind school
// affiliation: nil means "sign in and affiliate to see prices".
type catalogProduct struct {
	models.Product
	Price *float64 `json:"price,omitempty"`
}

// Catalog lists active products, optionally filtered by school. Prices
// are only included for staff and for customers approved with that
// product's school.
func (h *Handler) Catalog(c *gin.Context) {
	q := h.DB.Where("active = true").Order("name")
	if school := c.Query("school_id"); school != "" {
		q = q.Where("school_id = ? OR school_id IS NULL", school)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}

	approved := h.approvedSchools(c)
	staff := false
	if claims := auth.ClaimsFrom(c); claims != nil {
		staff = claims.IsStaff()
	}

	out := make([]catalogProduct, 0, len(products))
	for _, p := range products {
		cp := catalogProduct{Product: p}
		if staff || p.SchoolID == nil || approved[*p.SchoolID] {
			price := p.Price
			cp.Price = &price
		}
		cp.Product.Price = 0
		out = append(out, cp)
	}
	c.JSON(http.StatusOK, out)
}

// approvedSchools returns the set of school ids the requester may see
// prices for. Empty for anonymous visitors.
func (h *Handler) approvedSchools(c *gin.Context) map[uint]bool {
	userID := auth.UserIDFrom(c)
	if userID == "" {
		return nil
	}

	var affs []models.Affiliation
	h.DB.Where("user_id = ? AND status = ?", userID, models.AffiliationApproved).Find(&affs)

	set := make(map[uint]bool, len(affs))
	for _, a := range affs {
		set[a.SchoolID] = true
	}
	return set
}

type productRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Sizes        string  `json:"sizes"`
	SchoolID     *uint   `json:"school_id"`
	ImageMediaID *string `json:"image_media_id"`
	Active       *bool   `json:"active"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Sizes:        req.Sizes,
		SchoolID:     req.SchoolID,
		ImageMediaID: req.ImageMediaID,
		Active:       true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Sizes = req.Sizes
	product.SchoolID = req.SchoolID
	product.ImageMediaID = req.ImageMediaID
	if req.Active != nil {
		product.Active = *req.Active
	}
	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct deactivates the product. Rows are never removed so
// historical order items keep a valid reference.
func (h *Handler) DeleteProduct(c *gin.Context) {
	res := h.DB.Model(&models.Product{}).Where("id = ?", c.Param("id")).Update("active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportProducts streams the full catalog as an xlsx workbook for
// back-office price reviews.
func (h *Handler) ExportProducts(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Order("school_id, name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}

	schools := map[uint]string{}
	var rows []models.School
	h.DB.Find(&rows)
	for _, s := range rows {
		schools[s.ID] = s.Name
	}

	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Productos")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Nombre", "Colegio", "Precio", "Tallas", "Activo"} {
		header.AddCell().SetString(title)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Name)
		school := ""
		if p.SchoolID != nil {
			school = schools[*p.SchoolID]
		}
		row.AddCell().SetString(school)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetString(p.Sizes)
		row.AddCell().SetBool(p.Active)
	}

	filename := fmt.Sprintf("productos_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := wb.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

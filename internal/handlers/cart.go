package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bordamax/tienda-api/internal/auth"
	"github.com/bordamax/tienda-api/internal/models"
)

// GetCart returns the authenticated user's cart.
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.Carts.GetCart(auth.UserIDFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

type cartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// SetCartItem sets one line's quantity; zero or less removes it.
func (h *Handler) SetCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := h.activeProduct(c, req.ProductID)
	if !ok {
		return
	}
	if err := h.Carts.SetItem(auth.UserIDFrom(c), product, req.Size, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	h.GetCart(c)
}

// RemoveCartItem deletes one line.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	err = h.Carts.RemoveItem(auth.UserIDFrom(c), uint(productID), c.Query("size"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	h.GetCart(c)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.Carts.Clear(auth.UserIDFrom(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetGuestCart returns an anonymous cart by its client-generated id.
func (h *Handler) GetGuestCart(c *gin.Context) {
	cart, err := h.Carts.GetGuestCart(c.Param("guestId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// SetGuestCartItem mirrors SetCartItem for anonymous shoppers.
func (h *Handler) SetGuestCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := h.activeProduct(c, req.ProductID)
	if !ok {
		return
	}
	if err := h.Carts.SetGuestItem(c.Param("guestId"), product, req.Size, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	h.GetGuestCart(c)
}

// MergeGuestCart folds a guest cart into the signed-in user's cart.
func (h *Handler) MergeGuestCart(c *gin.Context) {
	if err := h.Carts.MergeGuestCart(c.Param("guestId"), auth.UserIDFrom(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to merge cart"})
		return
	}
	h.GetCart(c)
}

func (h *Handler) activeProduct(c *gin.Context, id uint) (*models.Product, bool) {
	var product models.Product
	err := h.DB.Where("active = true").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return nil, false
	}
	return &product, true
}

package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bordamax/tienda-api/internal/auth"
	"github.com/bordamax/tienda-api/internal/models"
	"github.com/bordamax/tienda-api/internal/orderpdf"
	"github.com/bordamax/tienda-api/internal/services"
)

type checkoutRequest struct {
	DeliveryMethod models.DeliveryMethod `json:"delivery_method" binding:"required"`
	AddressID      uint                  `json:"address_id"`

	// Staff-only: the walk-in customer the order is placed for.
	CustomerName   string `json:"customer_name"`
	CustomerIDCard string `json:"customer_id_card"`
}

// Checkout converts the user's cart into an order.
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DeliveryMethod != models.DeliveryPickup && req.DeliveryMethod != models.DeliveryDelivery {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_method must be pickup or delivery"})
		return
	}

	in := services.CheckoutInput{
		UserID:         auth.UserIDFrom(c),
		DeliveryMethod: req.DeliveryMethod,
		AddressID:      req.AddressID,
	}
	if claims := auth.ClaimsFrom(c); claims != nil && claims.IsStaff() && req.CustomerName != "" {
		in.PlacedByID = claims.UserID
		in.CustomerName = req.CustomerName
		in.CustomerIDCard = req.CustomerIDCard
	}

	order, err := h.Orders.Checkout(in)
	switch {
	case errors.Is(err, services.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, services.ErrAddressRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery orders require a valid address"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
	default:
		c.JSON(http.StatusCreated, order)
	}
}

// MyOrders lists the authenticated user's orders.
func (h *Handler) MyOrders(c *gin.Context) {
	orders, err := h.Orders.ListByUser(auth.UserIDFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListOrders returns every order for the admin panel.
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder loads one order by numeric id or UUID. Customers only see
// their own orders; staff see all.
func (h *Handler) GetOrder(c *gin.Context) {
	order, ok := h.authorizedOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

type statusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through its lifecycle (staff only).
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Orders.UpdateStatus(c.Param("id"), req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
	default:
		c.JSON(http.StatusOK, order)
	}
}

// OrderDocument renders and streams the order's PDF document.
func (h *Handler) OrderDocument(c *gin.Context) {
	order, ok := h.authorizedOrder(c)
	if !ok {
		return
	}

	var customer models.UserProfile
	if err := h.DB.First(&customer, "id = ?", order.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customer"})
		return
	}

	pdfCfg, err := h.loadPdfConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document settings"})
		return
	}

	logo := h.Resolver.ResolveLogo(c.Request.Context(), pdfCfg.LogoMediaID)
	orderURL := fmt.Sprintf("%s/orders/%s", h.Config.PublicBaseURL, order.UUID)
	cfg := orderpdf.ConfigFromModel(*pdfCfg, logo, orderURL)

	doc, err := h.PDF.Render(order, &customer, cfg)
	if err != nil {
		log.Printf("handlers: render order %s: %v", order.UUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate document"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// authorizedOrder loads the order in the id param and enforces that
// non-staff callers only reach their own orders.
func (h *Handler) authorizedOrder(c *gin.Context) (*models.Order, bool) {
	order, err := h.Orders.Get(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return nil, false
	}

	claims := auth.ClaimsFrom(c)
	if claims == nil || (!claims.IsStaff() && order.UserID != claims.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return nil, false
	}
	return order, true
}

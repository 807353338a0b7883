package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bordamax/tienda-api/internal/models"
	"github.com/bordamax/tienda-api/internal/pricing"
)

var (
	ErrAddressRequired = errors.New("services: delivery orders require an address")
	ErrInvalidStatus   = errors.New("services: invalid order status")
)

// StatusNotifier receives order status changes, e.g. a websocket hub
// feeding the admin panel. A nil notifier disables notifications.
type StatusNotifier interface {
	NotifyOrderStatus(order *models.Order)
}

// CheckoutInput describes one checkout request.
type CheckoutInput struct {
	UserID         string
	DeliveryMethod models.DeliveryMethod
	AddressID      uint // required for delivery

	// Staff placing an order on a customer's behalf.
	PlacedByID     string
	CustomerName   string
	CustomerIDCard string
}

// OrderService creates orders from carts and manages their lifecycle.
type OrderService struct {
	db       *gorm.DB
	carts    *CartService
	notifier StatusNotifier
}

func NewOrderService(db *gorm.DB, carts *CartService, notifier StatusNotifier) *OrderService {
	return &OrderService{db: db, carts: carts, notifier: notifier}
}

// Checkout atomically converts the user's cart into an order: item
// snapshots are taken from the current catalog rows, the shipping
// address is copied by value, and the cart is cleared. The stored
// total is the pricing invariant: item subtotal plus surcharge.
func (s *OrderService) Checkout(in CheckoutInput) (*models.Order, error) {
	cart, err := s.carts.GetCart(in.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	order := &models.Order{
		UUID:           uuid.NewString(),
		UserID:         in.UserID,
		Status:         models.OrderStatusProcessing,
		DeliveryMethod: in.DeliveryMethod,
		CustomerName:   in.CustomerName,
		CustomerIDCard: in.CustomerIDCard,
		CreatedAt:      time.Now(),
	}
	if in.PlacedByID != "" {
		order.PlacedByID = &in.PlacedByID
	}

	if in.DeliveryMethod == models.DeliveryDelivery {
		var addr models.Address
		err := s.db.Where("id = ? AND user_id = ?", in.AddressID, in.UserID).First(&addr).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressRequired
		}
		if err != nil {
			return nil, fmt.Errorf("services: load address: %w", err)
		}
		// Snapshot by value: later address edits must not touch the order.
		order.ShipLine = addr.Line
		order.ShipUnit = addr.Unit
		order.ShipInstructions = addr.Instructions
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range cart.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", line.ProductID).Error; err != nil {
				return fmt.Errorf("product %d: %w", line.ProductID, err)
			}

			pid := product.ID
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   &pid,
				ProductName: product.Name,
				Size:        line.Size,
				UnitPrice:   product.Price, // price at purchase, re-read from the catalog
				Quantity:    line.Quantity,
			})
		}

		order.TotalAmount = pricing.Total(order.Items, order.DeliveryMethod)

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("services: checkout: %w", err)
	}

	s.carts.scheduleSummary(cart.ID)
	if s.notifier != nil {
		s.notifier.NotifyOrderStatus(order)
	}
	return order, nil
}

// Get loads one order with its items, by numeric id or UUID.
func (s *OrderService) Get(id string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("User").
		Where("id::text = ? OR uuid = ?", id, id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListAll returns every order for the admin panel, newest first.
func (s *OrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("User").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatus moves an order to a new status (staff only at the
// handler layer) and notifies subscribers.
func (s *OrderService) UpdateStatus(id string, status models.OrderStatus) (*models.Order, error) {
	switch status {
	case models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("services: update status: %w", err)
	}
	order.Status = status

	if s.notifier != nil {
		s.notifier.NotifyOrderStatus(order)
	}
	return order, nil
}

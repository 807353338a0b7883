package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/bordamax/tienda-api/internal/models"
)

// How long to wait after the last cart mutation before persisting the
// recomputed summary. Mirrors the storefront's input debounce.
const cartSummaryDelay = 500 * time.Millisecond

var ErrCartEmpty = errors.New("services: cart is empty")

// CartService manages user and guest carts. Item writes are immediate;
// the derived summary columns (item count, total) are recomputed on a
// debounce so a burst of quantity changes costs one summary write.
type CartService struct {
	db *gorm.DB

	mu        sync.Mutex
	debouncer map[uint]*Debouncer // keyed by cart id
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db, debouncer: make(map[uint]*Debouncer)}
}

// GetCart returns the user's cart, creating an empty one on first use.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := s.db.Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("services: create cart: %w", err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("services: load cart: %w", err)
	}
	return &cart, nil
}

// SetItem adds the product in the given size to the cart or updates
// its quantity; quantity <= 0 removes the line.
func (s *CartService) SetItem(userID string, product *models.Product, size string, quantity int) error {
	cart, err := s.GetCart(userID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		err = s.db.Where("cart_id = ? AND product_id = ? AND size = ?", cart.ID, product.ID, size).
			Delete(&models.CartItem{}).Error
	} else {
		var item models.CartItem
		lookup := s.db.Where("cart_id = ? AND product_id = ? AND size = ?", cart.ID, product.ID, size).First(&item)
		switch {
		case errors.Is(lookup.Error, gorm.ErrRecordNotFound):
			err = s.db.Create(&models.CartItem{
				CartID:      cart.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Size:        size,
				UnitPrice:   product.Price,
				Quantity:    quantity,
				AddedAt:     time.Now(),
			}).Error
		case lookup.Error != nil:
			err = lookup.Error
		default:
			item.Quantity = quantity
			item.AddedAt = time.Now()
			err = s.db.Save(&item).Error
		}
	}
	if err != nil {
		return fmt.Errorf("services: set cart item: %w", err)
	}

	s.scheduleSummary(cart.ID)
	return nil
}

// RemoveItem deletes one line from the cart.
func (s *CartService) RemoveItem(userID string, productID uint, size string) error {
	cart, err := s.GetCart(userID)
	if err != nil {
		return err
	}
	res := s.db.Where("cart_id = ? AND product_id = ? AND size = ?", cart.ID, productID, size).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("services: remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.scheduleSummary(cart.ID)
	return nil
}

// Clear removes every line from the user's cart.
func (s *CartService) Clear(userID string) error {
	cart, err := s.GetCart(userID)
	if err != nil {
		return err
	}
	if err := s.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("services: clear cart: %w", err)
	}
	s.scheduleSummary(cart.ID)
	return nil
}

// GetGuestCart returns the anonymous shopper's cart, creating one on
// first use.
func (s *CartService) GetGuestCart(guestID string) (*models.GuestCart, error) {
	var cart models.GuestCart
	err := s.db.Preload("Items").Where("guest_id = ?", guestID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.GuestCart{GuestID: guestID}
		if err := s.db.Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("services: create guest cart: %w", err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("services: load guest cart: %w", err)
	}
	return &cart, nil
}

// SetGuestItem mirrors SetItem for guest carts.
func (s *CartService) SetGuestItem(guestID string, product *models.Product, size string, quantity int) error {
	cart, err := s.GetGuestCart(guestID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		if err := s.db.Where("cart_id = ? AND product_id = ? AND size = ?", cart.ID, product.ID, size).
			Delete(&models.GuestCartItem{}).Error; err != nil {
			return fmt.Errorf("services: set guest cart item: %w", err)
		}
		return nil
	}

	var item models.GuestCartItem
	lookup := s.db.Where("cart_id = ? AND product_id = ? AND size = ?", cart.ID, product.ID, size).First(&item)
	switch {
	case errors.Is(lookup.Error, gorm.ErrRecordNotFound):
		err = s.db.Create(&models.GuestCartItem{
			CartID:      cart.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        size,
			UnitPrice:   product.Price,
			Quantity:    quantity,
			AddedAt:     time.Now(),
		}).Error
	case lookup.Error != nil:
		err = lookup.Error
	default:
		item.Quantity = quantity
		item.AddedAt = time.Now()
		err = s.db.Save(&item).Error
	}
	if err != nil {
		return fmt.Errorf("services: set guest cart item: %w", err)
	}
	return nil
}

// MergeGuestCart folds a guest cart into the user's cart on sign-in
// and deletes the guest cart. Lines are matched by (product, size);
// on a match the larger quantity wins, so no item is ever lost and
// re-merging cannot inflate quantities.
func (s *CartService) MergeGuestCart(guestID, userID string) error {
	var guest models.GuestCart
	err := s.db.Preload("Items").Where("guest_id = ?", guestID).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // nothing to merge
	}
	if err != nil {
		return fmt.Errorf("services: load guest cart: %w", err)
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return err
	}

	merged := MergeCartItems(guest.Items, cart.Items)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for _, item := range merged {
			item.ID = 0
			item.CartID = cart.ID
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("cart_id = ?", guest.ID).Delete(&models.GuestCartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&guest).Error
	})
	if err != nil {
		return fmt.Errorf("services: merge guest cart: %w", err)
	}

	s.scheduleSummary(cart.ID)
	return nil
}

// MergeCartItems reconciles a guest's lines with the server-persisted
// ones. Union of both sets keyed by (product, size); on collision the
// larger quantity wins. User-cart snapshots win over guest snapshots
// for name/price since they were taken later.
func MergeCartItems(guest []models.GuestCartItem, user []models.CartItem) []models.CartItem {
	type key struct {
		productID uint
		size      string
	}

	index := make(map[key]int, len(user))
	merged := make([]models.CartItem, len(user))
	copy(merged, user)
	for i, item := range merged {
		index[key{item.ProductID, item.Size}] = i
	}

	for _, g := range guest {
		k := key{g.ProductID, g.Size}
		if i, ok := index[k]; ok {
			if g.Quantity > merged[i].Quantity {
				merged[i].Quantity = g.Quantity
			}
			continue
		}
		index[k] = len(merged)
		merged = append(merged, models.CartItem{
			ProductID:   g.ProductID,
			ProductName: g.ProductName,
			Size:        g.Size,
			UnitPrice:   g.UnitPrice,
			Quantity:    g.Quantity,
			AddedAt:     g.AddedAt,
		})
	}
	return merged
}

// scheduleSummary queues a debounced recompute of the cart's derived
// totals. The window trades write frequency for a small chance of a
// stale summary if the process dies inside it; item rows are already
// durable at this point.
func (s *CartService) scheduleSummary(cartID uint) {
	s.mu.Lock()
	d, ok := s.debouncer[cartID]
	if !ok {
		d = NewDebouncer(cartSummaryDelay)
		s.debouncer[cartID] = d
	}
	s.mu.Unlock()

	d.Trigger(func() {
		if err := s.recomputeSummary(cartID); err != nil {
			log.Printf("services: cart %d summary: %v", cartID, err)
		}
	})
}

func (s *CartService) recomputeSummary(cartID uint) error {
	var items []models.CartItem
	if err := s.db.Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
		return err
	}

	totalItems := 0
	totalPrice := 0.0
	for _, item := range items {
		totalItems += item.Quantity
		totalPrice += item.UnitPrice * float64(item.Quantity)
	}

	return s.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]any{
		"total_items": totalItems,
		"total_price": totalPrice,
		"updated_at":  time.Now(),
	}).Error
}

package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing" // placed, being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // received by the customer
	OrderStatusCancelled  OrderStatus = "cancelled"  // cancelled by staff
)

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

// Order is an immutable record of a completed purchase. Item rows and
// the shipping address are snapshots taken at checkout; later catalog
// or address edits must not alter them.
type Order struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	UUID string `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`

	UserID string      `gorm:"index;not null" json:"user_id"`
	User   UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	Status         OrderStatus    `gorm:"type:varchar(20);default:'processing'" json:"status"`
	DeliveryMethod DeliveryMethod `gorm:"type:varchar(10);not null" json:"delivery_method"`
	TotalAmount    float64        `json:"total_amount"`

	// Shipping address snapshot (delivery orders only).
	ShipLine         string `json:"ship_line,omitempty"`
	ShipUnit         string `json:"ship_unit,omitempty"`
	ShipInstructions string `json:"ship_instructions,omitempty"`

	// Filled when staff places the order on a customer's behalf.
	PlacedByID     *string `json:"placed_by_id,omitempty"`
	CustomerName   string  `json:"customer_name,omitempty"`
	CustomerIDCard string  `json:"customer_id_card,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DisplayRef is the human-facing order id, e.g. "#12345".
func (o *Order) DisplayRef() string {
	return fmt.Sprintf("#%d", o.ID)
}

// OrderItem is a frozen copy of a catalog product at purchase time.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index;not null" json:"order_id"`
	ProductID   *uint   `json:"product_id,omitempty"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Size        string  `json:"size"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// LineTotal is quantity times the unit price captured at purchase.
func (i *OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

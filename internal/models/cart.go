package models

import "time"

// Cart is the server-persisted cart of a registered user.
type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     string     `gorm:"uniqueIndex;not null" json:"user_id"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem snapshots name and price so the cart stays displayable even
// while staff edit the catalog. Price is re-read at checkout.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CartID      uint      `gorm:"index;not null" json:"cart_id"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	ProductName string    `json:"product_name"`
	Size        string    `json:"size"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
}

// GuestCart holds the cart of an anonymous shopper, keyed by the
// client-generated guest id. Merged into the user cart on sign-in.
type GuestCart struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	GuestID   string          `gorm:"uniqueIndex;not null" json:"guest_id"`
	Items     []GuestCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type GuestCartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CartID      uint      `gorm:"index;not null" json:"cart_id"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	ProductName string    `json:"product_name"`
	Size        string    `json:"size"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
}

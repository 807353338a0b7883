package models

import (
	"strings"
	"time"
)

// UserProfile is a storefront account: a customer affiliated with a
// school, or a staff member (admin/sales) managing the catalog.
type UserProfile struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Phone        string    `json:"phone"`
	IDCard       string    `json:"id_card"`
	IsAdmin      bool      `json:"is_admin"`
	IsSales      bool      `json:"is_sales"`
	SchoolID     *uint     `json:"school_id,omitempty"`
	Addresses    []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Orders       []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`

	// Password reset flow
	ResetToken        string     `gorm:"index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins the name parts, skipping empty ones.
func (u *UserProfile) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsStaff reports whether the user may manage orders and CMS content.
func (u *UserProfile) IsStaff() bool {
	return u.IsAdmin || u.IsSales
}

// DefaultAddress returns the address flagged as default, or nil.
// At most one address per user carries the flag.
func (u *UserProfile) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}

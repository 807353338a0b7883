package models

import "time"

// Product is a catalog entry, optionally scoped to a single school's
// uniform set. Sizes is a comma-separated list (e.g. "4,6,8,10,S,M,L").
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Sizes        string    `json:"sizes"`
	SchoolID     *uint     `gorm:"index" json:"school_id,omitempty"`
	ImageMediaID *string   `json:"image_media_id,omitempty"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// School groups products and customer affiliations.
type School struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	City        string    `json:"city"`
	LogoMediaID *string   `json:"logo_media_id,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

type AffiliationStatus string

const (
	AffiliationRequested AffiliationStatus = "requested"
	AffiliationApproved  AffiliationStatus = "approved"
	AffiliationRejected  AffiliationStatus = "rejected"
)

// Affiliation is a user's association with a school. Catalog prices
// for a school are visible only to approved affiliates and staff.
type Affiliation struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"index;not null" json:"user_id"`
	SchoolID  uint              `gorm:"index;not null" json:"school_id"`
	Status    AffiliationStatus `gorm:"type:varchar(12);default:'requested'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

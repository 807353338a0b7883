package models

import "time"

// Address is a saved delivery location. Orders snapshot the fields
// they need at checkout; editing or deleting an address afterwards
// never touches historical orders.
type Address struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	UserID       string   `gorm:"index;not null" json:"user_id"`
	Line         string   `gorm:"not null" json:"line"`
	Unit         string   `json:"unit,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	IsDefault    bool     `json:"is_default"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`

	// Precomputed navigation deep links, filled by the geocoding service.
	GoogleMapsURL string `json:"google_maps_url,omitempty"`
	WazeURL       string `json:"waze_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

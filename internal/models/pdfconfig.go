package models

import "time"

// PdfConfig is the single row parameterizing every generated order
// document. Created with defaults on first use, edited only by staff.
type PdfConfig struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	LogoMediaID    *string   `json:"logo_media_id,omitempty"`
	CompanyName    string    `json:"company_name"`
	ContactPhone   string    `json:"contact_phone"`
	ContactEmail   string    `json:"contact_email"`
	Website        string    `json:"website"`
	CompanyAddress string    `json:"company_address"`
	FooterText     string    `json:"footer_text"`
	AccentColor    string    `json:"accent_color"` // hex, e.g. "#1e3a8a"
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultPdfConfig seeds the singleton the first time it is read.
func DefaultPdfConfig() PdfConfig {
	return PdfConfig{
		ID:          1,
		CompanyName: "Bordamax Uniformes",
		FooterText:  "Gracias por su compra",
		AccentColor: "#1e3a8a",
	}
}

package models

import "time"

// MediaItem is a binary asset in the media library. The bytes live in
// object storage; this row carries the metadata and a resolvable URL.
type MediaItem struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	URL        string    `gorm:"not null" json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Package database opens the Postgres connection and migrates the
// schema.
package database

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bordamax/tienda-api/internal/models"
)

// Connect opens the database and runs auto-migration.
func Connect(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.Address{},
		&models.School{},
		&models.Affiliation{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.GuestCart{},
		&models.GuestCartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.MediaItem{},
		&models.PdfConfig{},
	)
	if err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return db, nil
}

// MediaStore adapts the media_items table to the resolver's lookup
// interface.
type MediaStore struct {
	db *gorm.DB
}

func NewMediaStore(db *gorm.DB) *MediaStore {
	return &MediaStore{db: db}
}

func (s *MediaStore) MediaByID(ctx context.Context, id string) (*models.MediaItem, error) {
	var item models.MediaItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

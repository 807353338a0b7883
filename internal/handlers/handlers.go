// Package handlers exposes the storefront's HTTP API.
package handlers

import (
	"gorm.io/gorm"

	"github.com/bordamax/tienda-api/internal/config"
	"github.com/bordamax/tienda-api/internal/media"
	"github.com/bordamax/tienda-api/internal/orderpdf"
	"github.com/bordamax/tienda-api/internal/services"
	"github.com/bordamax/tienda-api/internal/ws"
)

// Handler bundles the dependencies shared by every endpoint.
type Handler struct {
	DB       *gorm.DB
	Config   *config.Config
	Carts    *services.CartService
	Orders   *services.OrderService
	Email    *services.EmailService
	Geocoder *services.GeocodeService
	Resolver *media.Resolver
	PDF      *orderpdf.Generator
	Hub      *ws.Hub
}

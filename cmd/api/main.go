// Command api runs the storefront HTTP API.
package main

import (
	"log"

	"github.com/bordamax/tienda-api/internal/config"
	"github.com/bordamax/tienda-api/internal/database"
	"github.com/bordamax/tienda-api/internal/handlers"
	"github.com/bordamax/tienda-api/internal/media"
	"github.com/bordamax/tienda-api/internal/orderpdf"
	"github.com/bordamax/tienda-api/internal/services"
	"github.com/bordamax/tienda-api/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	hub := ws.NewHub()
	carts := services.NewCartService(db)

	h := &handlers.Handler{
		DB:       db,
		Config:   cfg,
		Carts:    carts,
		Orders:   services.NewOrderService(db, carts, hub),
		Email:    services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.PublicBaseURL),
		Geocoder: services.NewGeocodeService(cfg.GeocodeBaseURL),
		Resolver: media.NewResolver(database.NewMediaStore(db)),
		PDF:      orderpdf.NewGenerator(),
		Hub:      hub,
	}

	log.Printf("api listening on :%s", cfg.Port)
	if err := h.Router().Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

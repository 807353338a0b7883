// Package config loads the API's runtime configuration from the
// environment, with a local .env file for development.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the API needs to run.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	// Media library storage on local disk.
	UploadDir string

	// Absolute base URL clients use to reach the API, e.g. the QR code
	// on order documents points at "<PublicBaseURL>/orders/<uuid>".
	PublicBaseURL string

	// SMTP; leave host empty to disable outgoing mail.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	GeocodeBaseURL string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file, using environment")
	}

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       72 * time.Hour,
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:  getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       getenv("SMTP_FROM", "no-reply@bordamax.com"),
		GeocodeBaseURL: getenv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("config: SMTP_PORT: %w", err)
		}
		cfg.SMTPPort = p
	} else {
		cfg.SMTPPort = 587
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("config: TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

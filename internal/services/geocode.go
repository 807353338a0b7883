package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// GeocodeResult is a resolved location with ready-to-store navigation
// deep links for the mobile map apps couriers actually use.
type GeocodeResult struct {
	DisplayName   string  `json:"display_name"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	GoogleMapsURL string  `json:"google_maps_url"`
	WazeURL       string  `json:"waze_url"`
}

// GeocodeService wraps the external reverse-geocoding web service
// (Nominatim-compatible JSON API).
type GeocodeService struct {
	client  *http.Client
	baseURL string
}

func NewGeocodeService(baseURL string) *GeocodeService {
	return &GeocodeService{
		client:  &http.Client{Timeout: 8 * time.Second},
		baseURL: baseURL,
	}
}

// Reverse resolves coordinates into a display address plus deep links.
func (s *GeocodeService) Reverse(ctx context.Context, lat, lon float64) (*GeocodeResult, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		s.baseURL,
		url.QueryEscape(strconv.FormatFloat(lat, 'f', 6, 64)),
		url.QueryEscape(strconv.FormatFloat(lon, 'f', 6, 64)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("services: geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "tienda-api/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("services: geocode: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("services: geocode: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("services: geocode: read body: %w", err)
	}

	name := gjson.GetBytes(body, "display_name").String()
	if name == "" {
		return nil, fmt.Errorf("services: geocode: no result for %f,%f", lat, lon)
	}

	gmaps, waze := MapLinks(lat, lon)
	return &GeocodeResult{
		DisplayName:   name,
		Lat:           gjson.GetBytes(body, "lat").Float(),
		Lon:           gjson.GetBytes(body, "lon").Float(),
		GoogleMapsURL: gmaps,
		WazeURL:       waze,
	}, nil
}

// MapLinks builds navigation deep links for a coordinate pair.
func MapLinks(lat, lon float64) (googleMaps, waze string) {
	googleMaps = fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%.6f,%.6f", lat, lon)
	waze = fmt.Sprintf("https://waze.com/ul?ll=%.6f,%.6f&navigate=yes", lat, lon)
	return
}

package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"display_name": "Calle 50, Bella Vista, Panamá",
			"lat": "8.983100",
			"lon": "-79.516700"
		}`))
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	res, err := svc.Reverse(context.Background(), 8.9831, -79.5167)
	require.NoError(t, err)

	assert.Equal(t, "Calle 50, Bella Vista, Panamá", res.DisplayName)
	assert.InDelta(t, 8.9831, res.Lat, 1e-4)
	assert.InDelta(t, -79.5167, res.Lon, 1e-4)
	assert.Contains(t, res.GoogleMapsURL, "destination=8.983100,-79.516700")
	assert.Contains(t, res.WazeURL, "ll=8.983100,-79.516700")
}

func TestReverseGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	_, err := svc.Reverse(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestReverseGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	_, err := svc.Reverse(context.Background(), 1, 1)
	assert.Error(t, err)
}

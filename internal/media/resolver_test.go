package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bordamax/tienda-api/internal/models"
)

func TestFitWithinAlreadyFits(t *testing.T) {
	w, h := FitWithin(30, 15, 45, 22)
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 15.0, h)
}

func TestFitWithinWideImage(t *testing.T) {
	// W > maxW: width clamps to maxW, height scales by maxW/W.
	w, h := FitWithin(90, 30, 45, 22)
	assert.Equal(t, 45.0, w)
	assert.Equal(t, 15.0, h)
}

func TestFitWithinTwoStepCorrection(t *testing.T) {
	// After the width clamp the height still exceeds maxH, so a second
	// correction clamps height and rescales width.
	w, h := FitWithin(90, 90, 45, 22)
	assert.Equal(t, 22.0, h)
	assert.InDelta(t, 22.0, w, 1e-9)
}

func TestFitWithinTallImage(t *testing.T) {
	w, h := FitWithin(10, 110, 45, 22)
	assert.Equal(t, 22.0, h)
	assert.InDelta(t, 2.0, w, 1e-9)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestDecodeLogoPNG(t *testing.T) {
	logo, err := DecodeLogo(pngBytes(t, 320, 120), "image/png")
	require.NoError(t, err)
	assert.Equal(t, LogoRaster, logo.Kind)
	assert.Equal(t, "PNG", logo.Format)
	assert.Equal(t, 320.0, logo.Width)
	assert.Equal(t, 120.0, logo.Height)
}

func TestDecodeLogoGarbage(t *testing.T) {
	_, err := DecodeLogo([]byte("definitely not an image"), "image/png")
	assert.Error(t, err)
}

func TestDecodeLogoSVGExplicitSize(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="240px" height="80"></svg>`)
	logo, err := DecodeLogo(svg, "image/svg+xml")
	require.NoError(t, err)
	assert.Equal(t, LogoVector, logo.Kind)
	assert.Equal(t, 240.0, logo.Width)
	assert.Equal(t, 80.0, logo.Height)
}

func TestDecodeLogoSVGViewBoxFallback(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg viewBox="0 0 300 100"></svg>`)
	logo, err := DecodeLogo(svg, "")
	require.NoError(t, err)
	assert.Equal(t, 300.0, logo.Width)
	assert.Equal(t, 100.0, logo.Height)
}

func TestDecodeLogoSVGDefaultSize(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	logo, err := DecodeLogo(svg, "image/svg+xml")
	require.NoError(t, err)
	assert.Equal(t, defaultSVGWidth, logo.Width)
	assert.Equal(t, defaultSVGHeight, logo.Height)
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

type stubStore struct {
	items map[string]*models.MediaItem
}

func (s *stubStore) MediaByID(_ context.Context, id string) (*models.MediaItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("media %s not found", id)
	}
	return item, nil
}

func TestResolveLogoAbsentID(t *testing.T) {
	r := NewResolver(&stubStore{})

	assert.True(t, r.ResolveLogo(context.Background(), nil).IsAbsent())
	empty := ""
	assert.True(t, r.ResolveLogo(context.Background(), &empty).IsAbsent())
}

func TestResolveLogoUnknownID(t *testing.T) {
	r := NewResolver(&stubStore{items: map[string]*models.MediaItem{}})

	id := "f2a7b8d0-0000-0000-0000-000000000000"
	assert.True(t, r.ResolveLogo(context.Background(), &id).IsAbsent())
}

func TestResolveLogoFromDisk(t *testing.T) {
	path := t.TempDir() + "/logo.png"
	data := pngBytes(t, 100, 40)
	require.NoError(t, writeFile(path, data))

	id := "11111111-1111-1111-1111-111111111111"
	r := NewResolver(&stubStore{items: map[string]*models.MediaItem{
		id: {ID: id, MimeType: "image/png", URL: path},
	}})

	logo, ok := r.ResolveLogo(context.Background(), &id).Get()
	require.True(t, ok)
	assert.Equal(t, 100.0, logo.Width)
	assert.Equal(t, 40.0, logo.Height)
}

func TestResolveLogoUndecodableIsAbsent(t *testing.T) {
	path := t.TempDir() + "/broken.png"
	require.NoError(t, writeFile(path, []byte("corrupt")))

	id := "22222222-2222-2222-2222-222222222222"
	r := NewResolver(&stubStore{items: map[string]*models.MediaItem{
		id: {ID: id, MimeType: "image/png", URL: path},
	}})

	assert.True(t, r.ResolveLogo(context.Background(), &id).IsAbsent())
}

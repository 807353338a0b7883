// Package media resolves media-library assets into drawable images.
//
// The order-document generator only ever needs one thing from the
// media library: a logo it can place inside a bounded box. Resolution
// is deliberately forgiving — a missing id, a dead URL or undecodable
// bytes all yield "no logo" rather than an error, so a broken asset
// can never block document generation.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samber/mo"

	// Dimension decoding for formats beyond the stdlib set. Formats the
	// PDF primitive cannot embed are re-encoded to PNG after decoding.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/bordamax/tienda-api/internal/models"
)

// LogoKind distinguishes raster logos from vector markup.
type LogoKind int

const (
	LogoRaster LogoKind = iota
	LogoVector
)

// Logo is a drawable image with known intrinsic dimensions.
// For raster logos Data holds encoded bytes in a format the drawing
// primitive accepts (PNG, JPG or GIF); for vector logos Data holds the
// raw SVG markup and the dimensions come from its attributes.
type Logo struct {
	Kind   LogoKind
	Data   []byte
	Format string // "PNG", "JPG" or "GIF"; empty for vector
	Width  float64
	Height float64
}

// Store looks up media metadata by id.
type Store interface {
	MediaByID(ctx context.Context, id string) (*models.MediaItem, error)
}

// Resolver turns a media id into a Logo.
type Resolver struct {
	store  Store
	client *http.Client
}

func NewResolver(store Store) *Resolver {
	return &Resolver{
		store:  store,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// ResolveLogo resolves an optional media id into a drawable logo.
// An absent id, unknown media row, fetch failure or decode failure all
// yield None; failures are logged for diagnostics only.
func (r *Resolver) ResolveLogo(ctx context.Context, id *string) mo.Option[Logo] {
	if id == nil || *id == "" {
		return mo.None[Logo]()
	}

	item, err := r.store.MediaByID(ctx, *id)
	if err != nil {
		log.Printf("media: logo %s not found: %v", *id, err)
		return mo.None[Logo]()
	}

	data, err := r.fetch(ctx, item.URL)
	if err != nil {
		log.Printf("media: fetching logo %s: %v", *id, err)
		return mo.None[Logo]()
	}

	logo, err := DecodeLogo(data, item.MimeType)
	if err != nil {
		log.Printf("media: decoding logo %s: %v", *id, err)
		return mo.None[Logo]()
	}
	return mo.Some(logo)
}

// fetch loads the asset bytes. URLs without an http(s) scheme are
// treated as paths into the local object store.
func (r *Resolver) fetch(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return os.ReadFile(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// DecodeLogo decodes image bytes into a Logo with intrinsic dimensions.
func DecodeLogo(data []byte, mimeType string) (Logo, error) {
	if isSVG(data, mimeType) {
		w, h := svgDimensions(data)
		return Logo{Kind: LogoVector, Data: data, Width: w, Height: h}, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Logo{}, fmt.Errorf("media: decode config: %w", err)
	}

	switch format {
	case "png", "jpeg", "gif":
		return Logo{
			Kind:   LogoRaster,
			Data:   data,
			Format: fpdfFormat(format),
			Width:  float64(cfg.Width),
			Height: float64(cfg.Height),
		}, nil
	}

	// Decodable but not embeddable (webp, bmp, tiff): re-encode to PNG.
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Logo{}, fmt.Errorf("media: decode %s: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Logo{}, fmt.Errorf("media: re-encode %s: %w", format, err)
	}
	return Logo{
		Kind:   LogoRaster,
		Data:   buf.Bytes(),
		Format: "PNG",
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
	}, nil
}

func fpdfFormat(format string) string {
	switch format {
	case "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}

func isSVG(data []byte, mimeType string) bool {
	if strings.Contains(mimeType, "svg") {
		return true
	}
	head := bytes.TrimSpace(data)
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// FitWithin scales the dimensions down (never up) to fit the bounding
// box, preserving aspect ratio. Width is clamped first, then height.
func FitWithin(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	if w > maxW {
		scale := maxW / w
		w = maxW
		h = h * scale
	}
	if h > maxH {
		scale := maxH / h
		h = maxH
		w = w * scale
	}
	return w, h
}

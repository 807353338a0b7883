package orderpdf

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// qrPNG encodes content as a QR code and returns it as PNG bytes
// sized for crisp embedding.
func qrPNG(content string, pixels int) ([]byte, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("orderpdf: qr encode: %w", err)
	}
	code, err = barcode.Scale(code, pixels, pixels)
	if err != nil {
		return nil, fmt.Errorf("orderpdf: qr scale: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("orderpdf: qr png: %w", err)
	}
	return buf.Bytes(), nil
}

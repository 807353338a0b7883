package orderpdf

import (
	"bytes"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// RGB is a color value in the 0-255 range per channel.
type RGB struct {
	R, G, B int
}

var (
	colorBlack = RGB{0, 0, 0}
	colorWhite = RGB{255, 255, 255}
	colorGray  = RGB{120, 120, 120}
)

// ParseHexColor parses "#RRGGBB" (or "RRGGBB") into an RGB value.
func ParseHexColor(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}

// Canvas is the narrow drawing surface the layout engine renders onto.
// It covers exactly the operations the engine uses, so tests can run
// against a recording fake instead of a real PDF backend. Coordinates
// and sizes are in millimeters; the origin is the top-left corner.
type Canvas interface {
	// PageSize returns the page width and height.
	PageSize() (w, h float64)
	// AddPage starts a new page; subsequent draws land there.
	AddPage()

	SetFont(style string, size float64)
	SetTextColor(c RGB)
	SetFillColor(c RGB)

	// Cell draws a single line of text inside the given box.
	Cell(x, y, w, h float64, text, align string, fill bool)
	// CellLink draws a single line of text as a hyperlink.
	CellLink(x, y, w, h float64, text, align, url string)

	// SplitText word-wraps text to the given width using the current font.
	SplitText(text string, maxW float64) []string
	StringWidth(text string) float64

	// Rect draws a rectangle, filled with the current fill color or
	// stroked, depending on fill.
	Rect(x, y, w, h float64, fill bool)

	// Image places encoded raster bytes (PNG, JPG or GIF) at the given
	// box. The key must be unique per distinct image in the document.
	Image(key string, data []byte, format string, x, y, w, h float64)
	// Vector renders basic SVG markup scaled to the given width.
	Vector(markup []byte, x, y, w float64)

	// Err reports the first drawing error, if any.
	Err() error
	// Output serializes the finished document.
	Output(w io.Writer) error
}

// CanvasFactory produces a fresh Canvas per generated document.
type CanvasFactory func() Canvas

// fpdfCanvas implements Canvas on top of go-pdf/fpdf.
type fpdfCanvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewFpdfCanvas returns a portrait A4 canvas in millimeters. Page
// breaks are driven by the layout engine, not by fpdf's auto-break.
func NewFpdfCanvas() Canvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	return &fpdfCanvas{
		pdf: pdf,
		// CP1252 translation so accented names render correctly with
		// the core fonts.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *fpdfCanvas) PageSize() (float64, float64) {
	return c.pdf.GetPageSize()
}

func (c *fpdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *fpdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *fpdfCanvas) SetTextColor(col RGB) {
	c.pdf.SetTextColor(col.R, col.G, col.B)
}

func (c *fpdfCanvas) SetFillColor(col RGB) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
}

func (c *fpdfCanvas) Cell(x, y, w, h float64, text, align string, fill bool) {
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, c.tr(text), "", 0, align, fill, 0, "")
}

func (c *fpdfCanvas) CellLink(x, y, w, h float64, text, align, url string) {
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, c.tr(text), "", 0, align, false, 0, url)
}

func (c *fpdfCanvas) SplitText(text string, maxW float64) []string {
	raw := c.pdf.SplitLines([]byte(c.tr(text)), maxW)
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	return lines
}

func (c *fpdfCanvas) StringWidth(text string) float64 {
	return c.pdf.GetStringWidth(c.tr(text))
}

func (c *fpdfCanvas) Rect(x, y, w, h float64, fill bool) {
	style := "D"
	if fill {
		style = "F"
	}
	c.pdf.Rect(x, y, w, h, style)
}

func (c *fpdfCanvas) Image(key string, data []byte, format string, x, y, w, h float64) {
	opts := fpdf.ImageOptions{ImageType: format, ReadDpi: true}
	c.pdf.RegisterImageOptionsReader(key, opts, bytes.NewReader(data))
	c.pdf.ImageOptions(key, x, y, w, h, false, opts, 0, "")
}

func (c *fpdfCanvas) Vector(markup []byte, x, y, w float64) {
	sig, err := fpdf.SVGBasicParse(markup)
	if err != nil || sig.Wd <= 0 {
		// Undrawable vector markup degrades to an empty logo region.
		log.Printf("orderpdf: svg parse: %v", err)
		return
	}
	c.pdf.SetXY(x, y)
	c.pdf.SVGBasicWrite(&sig, w/sig.Wd)
}

func (c *fpdfCanvas) Err() error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}

func (c *fpdfCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}

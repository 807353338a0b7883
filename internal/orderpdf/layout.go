// Package orderpdf generates the downloadable PDF summary of one
// order. The layout is a single forward pass: logo and company header,
// order/customer blocks, delivery block, itemized table, totals and
// footer, with a Y cursor advanced past whichever block reached lowest.
package orderpdf

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/bordamax/tienda-api/internal/media"
	"github.com/bordamax/tienda-api/internal/models"
	"github.com/bordamax/tienda-api/internal/pricing"
)

// Layout constants, in millimeters on an A4 page.
const (
	pageMargin = 14.0
	logoMaxW   = 45.0
	logoMaxH   = 22.0

	lineH      = 5.0
	smallLineH = 4.5
	blockGap   = 8.0

	footerFromBottom = 14.0
	qrSize           = 16.0
)

var defaultAccent = RGB{30, 58, 138}

// DocConfig is the fully resolved presentation configuration for one
// generation call. Callers resolve the PdfConfig row and the logo up
// front; the engine itself never reaches into ambient state.
type DocConfig struct {
	CompanyName    string
	ContactEmail   string
	ContactPhone   string
	Website        string
	CompanyAddress string
	FooterText     string
	Accent         RGB
	Logo           mo.Option[media.Logo]

	// OrderURL, when set, is encoded as a QR code near the footer.
	OrderURL string
}

// ConfigFromModel builds a DocConfig from the persisted settings row
// and an already-resolved logo.
func ConfigFromModel(cfg models.PdfConfig, logo mo.Option[media.Logo], orderURL string) DocConfig {
	accent, ok := ParseHexColor(cfg.AccentColor)
	if !ok {
		accent = defaultAccent
	}
	return DocConfig{
		CompanyName:    cfg.CompanyName,
		ContactEmail:   cfg.ContactEmail,
		ContactPhone:   cfg.ContactPhone,
		Website:        cfg.Website,
		CompanyAddress: cfg.CompanyAddress,
		FooterText:     cfg.FooterText,
		Accent:         accent,
		Logo:           logo,
		OrderURL:       orderURL,
	}
}

// Document is a finished, downloadable order document.
type Document struct {
	Filename string
	Data     []byte
}

// Generator renders order documents. A fresh canvas is created per
// call, so concurrent generations are independent.
type Generator struct {
	newCanvas CanvasFactory
}

// Option configures a Generator.
type Option func(*Generator)

// WithCanvasFactory overrides the canvas backend, e.g. with a
// recording fake in tests.
func WithCanvasFactory(f CanvasFactory) Option {
	return func(g *Generator) {
		g.newCanvas = f
	}
}

// NewGenerator creates a Generator backed by the fpdf canvas unless
// overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{newCanvas: NewFpdfCanvas}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Render produces the document for one order. Layout or drawing
// failures abort with an error and no document; a missing or broken
// logo only skips the logo region.
func (g *Generator) Render(order *models.Order, customer *models.UserProfile, cfg DocConfig) (doc *Document, err error) {
	if order == nil {
		return nil, ErrNilOrder
	}
	if customer == nil {
		return nil, ErrNilCustomer
	}
	if g.newCanvas == nil {
		return nil, ErrCanvasUnavailable
	}
	cv := g.newCanvas()
	if cv == nil {
		return nil, ErrCanvasUnavailable
	}

	// The save step is reached only if the whole draw sequence
	// completed; a panic mid-layout surfaces as a generation error,
	// never as a partial file.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("orderpdf: render: %v", r)
		}
	}()

	pageW, pageH := cv.PageSize()
	contentW := pageW - 2*pageMargin

	logoEndY := g.drawLogo(cv, cfg)
	companyEndY := g.drawCompanyBlock(cv, cfg, pageW, contentW)

	// A tall logo or a long company block must both push the next
	// content down; take whichever ended lower.
	y := maxf(logoEndY, companyEndY) + blockGap

	y = g.drawParties(cv, order, customer, cfg, y, contentW)
	y = g.drawDeliveryBlock(cv, order, y+blockGap, contentW)

	y, err = g.drawItemsTable(cv, order, cfg, y+blockGap, contentW, pageH)
	if err != nil {
		return nil, newRenderError("items-table", err)
	}

	g.drawTotals(cv, order, pageW, y+6)
	g.drawFooter(cv, cfg, pageW, pageH)

	if err := cv.Err(); err != nil {
		return nil, newRenderError("draw", err)
	}

	var buf bytes.Buffer
	if err := cv.Output(&buf); err != nil {
		return nil, newRenderError("output", err)
	}

	name, _, _, _ := customerDisplay(order, customer)
	return &Document{
		Filename: Filename(order.ID, name, order.CreatedAt),
		Data:     buf.Bytes(),
	}, nil
}

// drawLogo places the resolved logo inside its bounding box at the
// top-left and returns the Y where the block ends. Without a logo the
// cursor stays at the top margin.
func (g *Generator) drawLogo(cv Canvas, cfg DocConfig) float64 {
	logo, ok := cfg.Logo.Get()
	if !ok {
		return pageMargin
	}

	w, h := media.FitWithin(logo.Width, logo.Height, logoMaxW, logoMaxH)
	switch logo.Kind {
	case media.LogoVector:
		// Vector markup scales by width; height follows the aspect ratio.
		cv.Vector(logo.Data, pageMargin, pageMargin, w)
	default:
		cv.Image("logo", logo.Data, logo.Format, pageMargin, pageMargin, w, h)
	}
	return pageMargin + h + 2
}

// drawCompanyBlock renders the company identity right-aligned at the
// top and returns the Y where the block ends. Empty fields and
// placeholder values ("N/A", "Ej: ...") are omitted entirely.
func (g *Generator) drawCompanyBlock(cv Canvas, cfg DocConfig, pageW, contentW float64) float64 {
	y := pageMargin

	if !placeholder(cfg.CompanyName) {
		cv.SetFont("B", 13)
		cv.Cell(pageMargin, y, contentW, 6, cfg.CompanyName, "R", false)
		y += 7
	}

	cv.SetFont("", 9)
	cv.SetTextColor(RGB{60, 60, 60})

	for _, line := range []string{cfg.ContactEmail, cfg.ContactPhone} {
		if placeholder(line) {
			continue
		}
		cv.Cell(pageMargin, y, contentW, smallLineH, line, "R", false)
		y += smallLineH
	}

	if !placeholder(cfg.Website) {
		cv.SetTextColor(RGB{29, 78, 216})
		cv.CellLink(pageMargin, y, contentW, smallLineH, cfg.Website, "R", websiteURL(cfg.Website))
		cv.SetTextColor(RGB{60, 60, 60})
		y += smallLineH
	}

	if !placeholder(cfg.CompanyAddress) {
		cv.Cell(pageMargin, y, contentW, smallLineH, cfg.CompanyAddress, "R", false)
		y += smallLineH
	}

	cv.SetTextColor(colorBlack)
	return y
}

// drawParties renders the order block (left) and customer block
// (right) side by side at the same starting Y, then returns the Y past
// the taller of the two.
func (g *Generator) drawParties(cv Canvas, order *models.Order, customer *models.UserProfile, cfg DocConfig, y, contentW float64) float64 {
	colW := contentW/2 - 4
	rightX := pageMargin + contentW/2 + 4

	name, email, phone, idCard := customerDisplay(order, customer)

	// Left: order identity.
	cv.SetFont("B", 11)
	cv.Cell(pageMargin, y, colW, 6, "Order "+order.DisplayRef(), "L", false)
	cv.SetFont("", 9)
	cv.Cell(pageMargin, y+6, colW, smallLineH, "Date: "+order.CreatedAt.Format("02/01/2006"), "L", false)
	leftEnd := y + 6 + smallLineH

	// Right: customer, each line conditional on the field being present.
	cv.SetFont("B", 11)
	cv.Cell(rightX, y, colW, 6, name, "L", false)
	cv.SetFont("", 9)
	rightY := y + 6
	for _, line := range []string{email, phone, idCard} {
		if placeholder(line) {
			continue
		}
		cv.Cell(rightX, rightY, colW, smallLineH, line, "L", false)
		rightY += smallLineH
	}

	return maxf(leftEnd, rightY)
}

// drawDeliveryBlock renders the full-width pickup or shipping block
// and returns the Y where it ends. Delivery instructions word-wrap,
// advancing the cursor by the wrapped line count.
func (g *Generator) drawDeliveryBlock(cv Canvas, order *models.Order, y, contentW float64) float64 {
	cv.SetFont("B", 11)
	if order.DeliveryMethod != models.DeliveryDelivery {
		cv.Cell(pageMargin, y, contentW, 6, "Pickup", "L", false)
		cv.SetFont("", 9)
		return y + 6
	}

	cv.Cell(pageMargin, y, contentW, 6, "Shipping Address", "L", false)
	y += 6

	cv.SetFont("", 9)
	cv.Cell(pageMargin, y, contentW, smallLineH, order.ShipLine, "L", false)
	y += smallLineH

	if order.ShipUnit != "" {
		cv.Cell(pageMargin, y, contentW, smallLineH, order.ShipUnit, "L", false)
		y += smallLineH
	}
	if order.ShipInstructions != "" {
		for _, line := range cv.SplitText(order.ShipInstructions, contentW) {
			cv.Cell(pageMargin, y, contentW, smallLineH, line, "L", false)
			y += smallLineH
		}
	}
	return y
}

// drawItemsTable renders the itemized table and returns the Y below
// its last row, tracking page breaks for long orders.
func (g *Generator) drawItemsTable(cv Canvas, order *models.Order, cfg DocConfig, y, contentW, pageH float64) (float64, error) {
	accent := cfg.Accent
	if accent == (RGB{}) {
		accent = defaultAccent
	}

	t := NewItemTable(cv, pageMargin, contentW, pageMargin, pageH-pageMargin-footerFromBottom).
		SetColumns(
			Column{Header: "#", Width: 10, Align: "C"},
			Column{Header: "Product", Align: "L"},
			Column{Header: "Size", Width: 18, Align: "C"},
			Column{Header: "Qty", Width: 14, Align: "C"},
			Column{Header: "Unit Price", Width: 26, Align: "R"},
			Column{Header: "Total", Width: 26, Align: "R"},
		).
		SetHeaderFill(accent)

	for i, item := range order.Items {
		t.AddRow(
			strconv.Itoa(i+1),
			item.ProductName,
			item.Size,
			strconv.Itoa(item.Quantity),
			money(item.UnitPrice),
			money(item.LineTotal()),
		)
	}

	return t.Render(y)
}

// drawTotals renders the right-aligned totals block. The subtotal is
// derived from the stored total, not recomputed from items, so item
// rounding can never contradict the authoritative amount.
func (g *Generator) drawTotals(cv Canvas, order *models.Order, pageW, y float64) {
	surcharge := pricing.Surcharge(order.DeliveryMethod)
	subtotal := order.TotalAmount - surcharge

	if !pricing.Consistent(order) {
		// Historical pricing drift: keep trusting the stored total but
		// leave a diagnostic trail.
		log.Printf("orderpdf: order %s stored total %.2f disagrees with item sum %.2f",
			order.DisplayRef(), order.TotalAmount, pricing.Total(order.Items, order.DeliveryMethod))
	}

	labelX := pageW - pageMargin - 70
	valueX := pageW - pageMargin - 30

	cv.SetFont("", 9)
	cv.Cell(labelX, y, 40, lineH, "Subtotal", "R", false)
	cv.Cell(valueX, y, 30, lineH, money(subtotal), "R", false)
	y += lineH

	if order.DeliveryMethod == models.DeliveryDelivery {
		cv.Cell(labelX, y, 40, lineH, "Shipping", "R", false)
		cv.Cell(valueX, y, 30, lineH, money(surcharge), "R", false)
		y += lineH
	}

	cv.SetFont("B", 11)
	cv.Cell(labelX, y, 40, 6, "Total", "R", false)
	cv.Cell(valueX, y, 30, 6, money(order.TotalAmount), "R", false)
	cv.SetFont("", 9)
}

// drawFooter centers the configured footer text and company name at a
// fixed distance from the page bottom, with the optional QR code just
// above it on the left.
func (g *Generator) drawFooter(cv Canvas, cfg DocConfig, pageW, pageH float64) {
	if cfg.OrderURL != "" {
		if data, err := qrPNG(cfg.OrderURL, 256); err == nil {
			cv.Image("qr", data, "PNG", pageMargin, pageH-footerFromBottom-qrSize-2, qrSize, qrSize)
		} else {
			log.Printf("orderpdf: qr: %v", err)
		}
	}

	parts := make([]string, 0, 2)
	if !placeholder(cfg.FooterText) {
		parts = append(parts, strings.TrimSpace(cfg.FooterText))
	}
	if !placeholder(cfg.CompanyName) {
		parts = append(parts, strings.TrimSpace(cfg.CompanyName))
	}
	if len(parts) == 0 {
		return
	}

	cv.SetFont("", 8)
	cv.SetTextColor(colorGray)
	cv.Cell(pageMargin, pageH-footerFromBottom, pageW-2*pageMargin, lineH, strings.Join(parts, " · "), "C", false)
	cv.SetTextColor(colorBlack)
}

// customerDisplay resolves the name and contact lines for the
// document. Orders placed by staff on a customer's behalf carry their
// own name/id-card snapshot, which wins over the profile.
func customerDisplay(order *models.Order, customer *models.UserProfile) (name, email, phone, idCard string) {
	name = customer.FullName()
	if order.CustomerName != "" {
		name = order.CustomerName
	}
	idCard = customer.IDCard
	if order.CustomerIDCard != "" {
		idCard = order.CustomerIDCard
	}
	return name, customer.Email, customer.Phone, idCard
}

// placeholder reports whether a configured value is empty or a
// template hint that must not be printed verbatim.
func placeholder(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return true
	}
	lower := strings.ToLower(t)
	return lower == "n/a" || strings.HasPrefix(lower, "ej:")
}

func websiteURL(site string) string {
	if strings.HasPrefix(site, "http://") || strings.HasPrefix(site, "https://") {
		return site
	}
	return "https://" + site
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

package orderpdf

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"

	"github.com/bordamax/tienda-api/internal/media"
	"github.com/bordamax/tienda-api/internal/models"
)

// fakeCanvas records draw calls instead of rendering pixels, so tests
// can assert on the produced text and layout without a PDF backend.
type fakeCanvas struct {
	pageW, pageH float64
	page         int

	cells  []fakeCell
	images []fakeImage
	rects  int
}

type fakeCell struct {
	page  int
	x, y  float64
	text  string
	align string
	link  string
}

type fakeImage struct {
	key        string
	x, y, w, h float64
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{pageW: 210, pageH: 297, page: 1}
}

func (c *fakeCanvas) PageSize() (float64, float64) { return c.pageW, c.pageH }
func (c *fakeCanvas) AddPage()                     { c.page++ }
func (c *fakeCanvas) SetFont(string, float64)      {}
func (c *fakeCanvas) SetTextColor(RGB)             {}
func (c *fakeCanvas) SetFillColor(RGB)             {}

func (c *fakeCanvas) Cell(x, y, w, h float64, text, align string, fill bool) {
	c.cells = append(c.cells, fakeCell{page: c.page, x: x, y: y, text: text, align: align})
}

func (c *fakeCanvas) CellLink(x, y, w, h float64, text, align, url string) {
	c.cells = append(c.cells, fakeCell{page: c.page, x: x, y: y, text: text, align: align, link: url})
}

// SplitText wraps by an approximate fixed glyph width; deterministic
// and good enough for layout assertions.
func (c *fakeCanvas) SplitText(text string, maxW float64) []string {
	maxChars := int(maxW / 2)
	if maxChars < 1 {
		maxChars = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > maxChars {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

func (c *fakeCanvas) StringWidth(text string) float64 { return float64(len(text)) * 2 }

func (c *fakeCanvas) Rect(x, y, w, h float64, fill bool) { c.rects++ }

func (c *fakeCanvas) Image(key string, data []byte, format string, x, y, w, h float64) {
	c.images = append(c.images, fakeImage{key: key, x: x, y: y, w: w, h: h})
}

func (c *fakeCanvas) Vector(markup []byte, x, y, w float64) {
	c.images = append(c.images, fakeImage{key: "svg", x: x, y: y, w: w})
}

func (c *fakeCanvas) Err() error { return nil }

func (c *fakeCanvas) Output(w io.Writer) error {
	_, err := w.Write([]byte("%FAKE"))
	return err
}

func (c *fakeCanvas) hasCell(text string) bool {
	for _, cell := range c.cells {
		if cell.text == text {
			return true
		}
	}
	return false
}

func fakeGenerator() (*Generator, *fakeCanvas) {
	cv := newFakeCanvas()
	g := NewGenerator(WithCanvasFactory(func() Canvas { return cv }))
	return g, cv
}

func testOrder(method models.DeliveryMethod) *models.Order {
	items := []models.OrderItem{
		{ProductName: "Polo Shirt", Size: "8", UnitPrice: 10.00, Quantity: 2},
		{ProductName: "Embroidered Cap", Size: "M", UnitPrice: 5.50, Quantity: 1},
	}
	total := 25.50
	if method == models.DeliveryDelivery {
		total += 5.00
	}
	return &models.Order{
		ID:             12345,
		UUID:           "6a0f18a8-3e0b-4f5c-9a51-2d95be7e2b11",
		Items:          items,
		Status:         models.OrderStatusProcessing,
		DeliveryMethod: method,
		TotalAmount:    total,
		ShipLine:       "Calle 50, Edificio Rosa",
		CreatedAt:      time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func testCustomer() *models.UserProfile {
	return &models.UserProfile{
		FirstName: "María",
		LastName:  "Pérez",
		Email:     "maria@example.com",
		Phone:     "6000-0000",
		IDCard:    "8-123-456",
	}
}

func TestRenderDeliveryTotals(t *testing.T) {
	g, cv := fakeGenerator()

	doc, err := g.Render(testOrder(models.DeliveryDelivery), testCustomer(), DocConfig{CompanyName: "Bordamax"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(doc.Data) == 0 {
		t.Fatal("expected document bytes")
	}

	for _, want := range []string{"Subtotal", "$25.50", "Shipping", "$5.00", "Total", "$30.50", "Shipping Address"} {
		if !cv.hasCell(want) {
			t.Errorf("missing cell %q", want)
		}
	}
}

func TestRenderPickup(t *testing.T) {
	g, cv := fakeGenerator()

	if _, err := g.Render(testOrder(models.DeliveryPickup), testCustomer(), DocConfig{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if !cv.hasCell("Pickup") {
		t.Error("expected Pickup block title")
	}
	if cv.hasCell("Shipping Address") {
		t.Error("pickup order must not render a shipping address block")
	}
	if cv.hasCell("Shipping") {
		t.Error("pickup order must not render a surcharge line")
	}

	// Subtotal and total both show the stored amount.
	count := 0
	for _, cell := range cv.cells {
		if cell.text == "$25.50" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected $25.50 twice (subtotal and total), got %d", count)
	}
}

func TestPlaceholderContactOmitted(t *testing.T) {
	g, cv := fakeGenerator()

	cfg := DocConfig{
		CompanyName:  "Bordamax",
		ContactPhone: "N/A",
		ContactEmail: "Ej: correo@empresa.com",
		Website:      "bordamax.example",
	}
	if _, err := g.Render(testOrder(models.DeliveryPickup), testCustomer(), cfg); err != nil {
		t.Fatalf("render: %v", err)
	}

	if cv.hasCell("N/A") {
		t.Error("placeholder phone must be omitted, not printed verbatim")
	}
	if cv.hasCell("Ej: correo@empresa.com") {
		t.Error("template-hint email must be omitted")
	}
	if !cv.hasCell("bordamax.example") {
		t.Error("real website line missing")
	}
}

func TestWebsiteRenderedAsHyperlink(t *testing.T) {
	g, cv := fakeGenerator()

	cfg := DocConfig{Website: "bordamax.example"}
	if _, err := g.Render(testOrder(models.DeliveryPickup), testCustomer(), cfg); err != nil {
		t.Fatalf("render: %v", err)
	}

	found := false
	for _, cell := range cv.cells {
		if cell.text == "bordamax.example" && cell.link == "https://bordamax.example" {
			found = true
		}
	}
	if !found {
		t.Error("website cell should carry a normalized hyperlink")
	}
}

func TestRenderWithoutCanvas(t *testing.T) {
	g := NewGenerator(WithCanvasFactory(func() Canvas { return nil }))

	_, err := g.Render(testOrder(models.DeliveryPickup), testCustomer(), DocConfig{})
	if !errors.Is(err, ErrCanvasUnavailable) {
		t.Fatalf("expected ErrCanvasUnavailable, got %v", err)
	}
}

func TestRenderWithoutLogoDrawsNoImage(t *testing.T) {
	g, cv := fakeGenerator()

	if _, err := g.Render(testOrder(models.DeliveryPickup), testCustomer(), DocConfig{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(cv.images) != 0 {
		t.Errorf("expected no images, got %d", len(cv.images))
	}
}

func TestRenderLogoScaledIntoBox(t *testing.T) {
	g, cv := fakeGenerator()

	cfg := DocConfig{
		Logo: mo.Some(media.Logo{
			Kind:   media.LogoRaster,
			Data:   []byte("png-bytes"),
			Format: "PNG",
			Width:  900,
			Height: 300,
		}),
	}
	if _, err := g.Render(testOrder(models.DeliveryPickup), testCustomer(), cfg); err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(cv.images) != 1 {
		t.Fatalf("expected one logo image, got %d", len(cv.images))
	}
	img := cv.images[0]
	if img.w != logoMaxW {
		t.Errorf("logo width = %v, want %v", img.w, logoMaxW)
	}
	if img.h != logoMaxW/3 {
		t.Errorf("logo height = %v, want aspect-preserving %v", img.h, logoMaxW/3)
	}
}

func TestSubtotalDerivedFromStoredTotal(t *testing.T) {
	g, cv := fakeGenerator()

	// A historical order whose stored total no longer matches its
	// items: the Total line trusts the stored amount and the Subtotal
	// is derived from it by subtraction.
	order := testOrder(models.DeliveryDelivery)
	order.TotalAmount = 40.00

	if _, err := g.Render(order, testCustomer(), DocConfig{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !cv.hasCell("$35.00") {
		t.Error("subtotal should be stored total minus surcharge")
	}
	if !cv.hasCell("$40.00") {
		t.Error("total line should show the stored total")
	}
}

func TestStaffPlacedOrderUsesSnapshotName(t *testing.T) {
	g, cv := fakeGenerator()

	order := testOrder(models.DeliveryPickup)
	order.CustomerName = "Ana Castillo"
	order.CustomerIDCard = "4-567-890"

	doc, err := g.Render(order, testCustomer(), DocConfig{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !cv.hasCell("Ana Castillo") {
		t.Error("snapshot customer name should win over the profile name")
	}
	if !strings.Contains(doc.Filename, "Ana_Castillo") {
		t.Errorf("filename %q should use the snapshot name", doc.Filename)
	}
}

func TestRenderQRWhenOrderURLSet(t *testing.T) {
	g, cv := fakeGenerator()

	cfg := DocConfig{OrderURL: "https://tienda.example/orders/6a0f18a8"}
	if _, err := g.Render(testOrder(models.DeliveryPickup), testCustomer(), cfg); err != nil {
		t.Fatalf("render: %v", err)
	}

	found := false
	for _, img := range cv.images {
		if img.key == "qr" {
			found = true
		}
	}
	if !found {
		t.Error("expected a QR image when OrderURL is configured")
	}
}

// Real-backend smoke test: the full layout drawn through fpdf must
// serialize to a valid-looking PDF.
func TestRenderProducesPDF(t *testing.T) {
	g := NewGenerator()

	order := testOrder(models.DeliveryDelivery)
	doc, err := g.Render(order, testCustomer(), DocConfig{
		CompanyName:  "Bordamax Uniformes",
		ContactEmail: "ventas@bordamax.example",
		Website:      "bordamax.example",
		FooterText:   "Gracias por su compra",
		Accent:       RGB{30, 58, 138},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF")) {
		t.Error("expected PDF magic header")
	}
	if doc.Filename != "Pedido_12345_Mara_Prez_14-03-2025.pdf" {
		t.Errorf("unexpected filename %q", doc.Filename)
	}
	t.Logf("order document: %d bytes", len(doc.Data))
}

func TestRenderLongOrderSpansPages(t *testing.T) {
	g := NewGenerator()

	order := testOrder(models.DeliveryPickup)
	order.Items = nil
	for i := 0; i < 60; i++ {
		order.Items = append(order.Items, models.OrderItem{
			ProductName: "Uniform Piece",
			Size:        "10",
			UnitPrice:   3.25,
			Quantity:    1,
		})
	}
	order.TotalAmount = 60 * 3.25

	doc, err := g.Render(order, testCustomer(), DocConfig{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(doc.Data) == 0 {
		t.Fatal("expected document bytes")
	}
	t.Logf("long order document: %d bytes", len(doc.Data))
}

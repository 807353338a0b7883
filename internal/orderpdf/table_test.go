package orderpdf

import (
	"strconv"
	"testing"
)

func newTestTable(cv Canvas, pageH float64) *ItemTable {
	return NewItemTable(cv, 10, 180, 10, pageH-20).
		SetColumns(
			Column{Header: "#", Width: 10, Align: "C"},
			Column{Header: "Product", Align: "L"},
			Column{Header: "Price", Width: 30, Align: "R"},
		)
}

func TestTableAutoWidths(t *testing.T) {
	cv := newFakeCanvas()
	tb := newTestTable(cv, cv.pageH)

	widths := tb.resolveWidths()
	if len(widths) != 3 {
		t.Fatalf("expected 3 widths, got %d", len(widths))
	}
	if widths[0] != 10 || widths[2] != 30 {
		t.Errorf("fixed widths not preserved: %v", widths)
	}
	if widths[1] != 140 {
		t.Errorf("auto column should fill remaining 140, got %v", widths[1])
	}
}

func TestTableEndYAdvances(t *testing.T) {
	cv := newFakeCanvas()
	tb := newTestTable(cv, cv.pageH)
	tb.AddRow("1", "Polo Shirt", "$10.00")
	tb.AddRow("2", "Cap", "$5.50")

	endY, err := tb.Render(50)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if endY <= 50 {
		t.Errorf("end Y %v should be below start Y", endY)
	}
	if cv.page != 1 {
		t.Errorf("two rows should fit on one page, got %d pages", cv.page)
	}
}

func TestTableHeaderRepeatsOnPageBreak(t *testing.T) {
	cv := newFakeCanvas()
	cv.pageH = 60 // small page to force breaks
	tb := newTestTable(cv, cv.pageH)

	for i := 0; i < 20; i++ {
		tb.AddRow(strconv.Itoa(i+1), "Item", "$1.00")
	}

	endY, err := tb.Render(10)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if cv.page < 2 {
		t.Fatalf("expected a page break, got %d page(s)", cv.page)
	}
	if endY > cv.pageH-20 {
		t.Errorf("end Y %v beyond the writable area", endY)
	}

	headers := 0
	for _, cell := range cv.cells {
		if cell.text == "Product" {
			headers++
		}
	}
	if headers != cv.page {
		t.Errorf("header drawn %d times across %d pages", headers, cv.page)
	}
}

func TestTableWrappedCellGrowsRow(t *testing.T) {
	cv := newFakeCanvas()
	tb := newTestTable(cv, cv.pageH)
	tb.AddRow("1", "short", "$1.00")

	short, err := tb.Render(10)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	cv2 := newFakeCanvas()
	tb2 := newTestTable(cv2, cv2.pageH)
	tb2.AddRow("1", "a very long product description that certainly wraps across multiple lines when constrained to the column width of this table", "$1.00")

	long, err := tb2.Render(10)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if long <= short {
		t.Errorf("wrapped row should be taller: %v vs %v", long, short)
	}
}

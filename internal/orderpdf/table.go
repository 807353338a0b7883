package orderpdf

// Items table for the order document: fixed and auto-fill column
// widths, a styled header row repeated after every page break, and
// alternating row fills. Render reports the Y coordinate where the
// table actually ended, which for a long order is on a later page.

// Column defines one table column.
type Column struct {
	Header string
	Width  float64 // fixed width; 0 shares the remaining space
	Align  string  // "L", "C" or "R"
}

// ItemTable lays out rows of text cells onto a Canvas.
type ItemTable struct {
	cv      Canvas
	columns []Column
	rows    [][]string

	x, width float64
	topY     float64 // Y where rows continue after a page break
	bottomY  float64 // lowest Y a row may end on before breaking

	fontSize   float64
	padding    float64
	headerFill RGB
	headerText RGB
	altFill    RGB
}

// NewItemTable creates a table spanning the given horizontal extent.
// topY and bottomY bound the writable area on continuation pages.
func NewItemTable(cv Canvas, x, width, topY, bottomY float64) *ItemTable {
	return &ItemTable{
		cv:         cv,
		x:          x,
		width:      width,
		topY:       topY,
		bottomY:    bottomY,
		fontSize:   9,
		padding:    1.6,
		headerFill: RGB{63, 81, 181},
		headerText: colorWhite,
		altFill:    RGB{245, 245, 245},
	}
}

func (t *ItemTable) SetColumns(cols ...Column) *ItemTable {
	t.columns = cols
	return t
}

func (t *ItemTable) SetHeaderFill(c RGB) *ItemTable {
	t.headerFill = c
	return t
}

func (t *ItemTable) AddRow(cells ...string) *ItemTable {
	t.rows = append(t.rows, cells)
	return t
}

// Render draws the table starting at startY and returns the Y
// coordinate just below the last row, on whichever page it landed.
func (t *ItemTable) Render(startY float64) (float64, error) {
	widths := t.resolveWidths()
	y := t.renderHeader(startY, widths)

	for i, row := range t.rows {
		rowH := t.rowHeight(row, widths)
		if y+rowH > t.bottomY {
			t.cv.AddPage()
			y = t.renderHeader(t.topY, widths)
		}
		t.renderRow(row, widths, y, i%2 == 0)
		y += rowH
	}

	return y, t.cv.Err()
}

// resolveWidths distributes the table width across columns: fixed
// widths first, the remainder split evenly among auto columns.
func (t *ItemTable) resolveWidths() []float64 {
	widths := make([]float64, len(t.columns))
	fixed := 0.0
	auto := 0
	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixed += col.Width
		} else {
			auto++
		}
	}
	if auto > 0 {
		remaining := t.width - fixed
		if remaining < 0 {
			remaining = 0
		}
		share := remaining / float64(auto)
		for i, col := range t.columns {
			if col.Width == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

func (t *ItemTable) lineHeight() float64 {
	return t.fontSize * 0.5
}

func (t *ItemTable) rowHeight(row []string, widths []float64) float64 {
	h := t.lineHeight() + 2*t.padding
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		lines := t.cv.SplitText(cell, widths[i]-2*t.padding)
		cellH := float64(len(lines))*t.lineHeight() + 2*t.padding
		if cellH > h {
			h = cellH
		}
	}
	return h
}

func (t *ItemTable) renderHeader(y float64, widths []float64) float64 {
	t.cv.SetFont("B", t.fontSize)
	t.cv.SetFillColor(t.headerFill)
	t.cv.SetTextColor(t.headerText)

	h := t.lineHeight() + 2*t.padding
	x := t.x
	for i, col := range t.columns {
		t.cv.Rect(x, y, widths[i], h, true)
		t.cv.Cell(x+t.padding, y+t.padding, widths[i]-2*t.padding, t.lineHeight(), col.Header, col.Align, false)
		x += widths[i]
	}

	t.cv.SetFont("", t.fontSize)
	t.cv.SetTextColor(colorBlack)
	return y + h
}

func (t *ItemTable) renderRow(row []string, widths []float64, y float64, shaded bool) {
	rowH := t.rowHeight(row, widths)

	if shaded {
		t.cv.SetFillColor(t.altFill)
		t.cv.Rect(t.x, y, t.width, rowH, true)
	}

	x := t.x
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		align := "L"
		if i < len(t.columns) && t.columns[i].Align != "" {
			align = t.columns[i].Align
		}

		lines := t.cv.SplitText(cell, widths[i]-2*t.padding)
		lineY := y + t.padding
		for _, line := range lines {
			t.cv.Cell(x+t.padding, lineY, widths[i]-2*t.padding, t.lineHeight(), line, align, false)
			lineY += t.lineHeight()
		}

		t.cv.Rect(x, y, widths[i], rowH, false)
		x += widths[i]
	}
}

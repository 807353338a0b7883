package media

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

// Fallback size when SVG markup declares neither width/height nor a
// viewBox.
const (
	defaultSVGWidth  = 120.0
	defaultSVGHeight = 60.0
)

// svgDimensions extracts intrinsic dimensions from SVG markup.
// Precedence: explicit width/height attributes, then the viewBox, then
// a fixed default.
func svgDimensions(data []byte) (float64, float64) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return defaultSVGWidth, defaultSVGHeight
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "svg" {
			continue
		}

		var width, height float64
		var viewBox string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				width = svgLength(attr.Value)
			case "height":
				height = svgLength(attr.Value)
			case "viewBox":
				viewBox = attr.Value
			}
		}

		if width > 0 && height > 0 {
			return width, height
		}
		if w, h, ok := parseViewBox(viewBox); ok {
			return w, h
		}
		return defaultSVGWidth, defaultSVGHeight
	}
}

// svgLength parses a length value, ignoring a trailing unit ("120px",
// "40mm"). Percentages have no absolute meaning here and yield zero.
func svgLength(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasSuffix(v, "%") {
		return 0
	}
	end := len(v)
	for end > 0 {
		c := v[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	f, err := strconv.ParseFloat(v[:end], 64)
	if err != nil || f <= 0 {
		return 0
	}
	return f
}

// parseViewBox reads "minX minY width height".
func parseViewBox(v string) (float64, float64, bool) {
	fields := strings.FieldsFunc(strings.TrimSpace(v), func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

package orderpdf

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var filenameStrip = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Filename derives the download name for a generated document:
// Pedido_{orderID}_{sanitizedName}_{DD-MM-YYYY}.pdf. Whitespace in the
// customer name becomes underscores and everything outside
// [A-Za-z0-9_] is stripped, so the result is deterministic and safe
// for any filesystem.
func Filename(orderID uint, customerName string, date time.Time) string {
	name := strings.Join(strings.Fields(customerName), "_")
	name = filenameStrip.ReplaceAllString(name, "")
	return fmt.Sprintf("Pedido_%d_%s_%s.pdf", orderID, name, date.Format("02-01-2006"))
}

// Package pricing is the single source of truth for checkout amounts.
// Both the checkout flow and the order-document generator derive their
// figures from here, so the surcharge can never drift between the two.
package pricing

import (
	"math"

	"github.com/samber/lo"

	"github.com/bordamax/tienda-api/internal/models"
)

// DeliverySurcharge is the flat fee added when an order is delivered
// instead of picked up, in currency units.
const DeliverySurcharge = 5.00

// Tolerance under which two derivations of the same amount are
// considered equal.
const Tolerance = 0.01

// Surcharge returns the delivery fee for the given method.
func Surcharge(method models.DeliveryMethod) float64 {
	if method == models.DeliveryDelivery {
		return DeliverySurcharge
	}
	return 0
}

// Subtotal sums the line totals of the given items.
func Subtotal(items []models.OrderItem) float64 {
	return lo.SumBy(items, func(i models.OrderItem) float64 {
		return i.LineTotal()
	})
}

// Total is the checkout invariant: item subtotal plus surcharge.
func Total(items []models.OrderItem, method models.DeliveryMethod) float64 {
	return Subtotal(items) + Surcharge(method)
}

// Consistent reports whether the order's stored total matches the sum
// of its items plus surcharge within Tolerance. Historical orders may
// legitimately fail this after a pricing change; callers decide what
// to do about it.
func Consistent(o *models.Order) bool {
	return math.Abs(o.TotalAmount-Total(o.Items, o.DeliveryMethod)) <= Tolerance
}

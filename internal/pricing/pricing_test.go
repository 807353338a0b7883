package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bordamax/tienda-api/internal/models"
)

func items() []models.OrderItem {
	return []models.OrderItem{
		{ProductName: "Polo Shirt", UnitPrice: 10.00, Quantity: 2},
		{ProductName: "Cap", UnitPrice: 5.50, Quantity: 1},
	}
}

func TestSubtotal(t *testing.T) {
	assert.InDelta(t, 25.50, Subtotal(items()), Tolerance)
}

func TestTotalDelivery(t *testing.T) {
	assert.InDelta(t, 30.50, Total(items(), models.DeliveryDelivery), Tolerance)
}

func TestTotalPickup(t *testing.T) {
	assert.InDelta(t, 25.50, Total(items(), models.DeliveryPickup), Tolerance)
}

func TestSurcharge(t *testing.T) {
	assert.Equal(t, DeliverySurcharge, Surcharge(models.DeliveryDelivery))
	assert.Zero(t, Surcharge(models.DeliveryPickup))
}

func TestConsistent(t *testing.T) {
	order := &models.Order{
		Items:          items(),
		DeliveryMethod: models.DeliveryDelivery,
		TotalAmount:    30.50,
	}
	assert.True(t, Consistent(order))

	order.TotalAmount = 31.00
	assert.False(t, Consistent(order))
}

// The document's subtotal is derived as total minus surcharge; for any
// order built through Total the two derivations must agree.
func TestSubtotalDerivationsAgree(t *testing.T) {
	for _, method := range []models.DeliveryMethod{models.DeliveryPickup, models.DeliveryDelivery} {
		total := Total(items(), method)
		assert.InDelta(t, Subtotal(items()), total-Surcharge(method), Tolerance)
	}
}

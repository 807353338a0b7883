package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bordamax/tienda-api/internal/models"
)

func TestMergeCartItemsUnion(t *testing.T) {
	guest := []models.GuestCartItem{
		{ProductID: 1, Size: "8", ProductName: "Polo", UnitPrice: 10, Quantity: 2},
		{ProductID: 2, Size: "M", ProductName: "Cap", UnitPrice: 5.5, Quantity: 1},
	}
	user := []models.CartItem{
		{ProductID: 3, Size: "L", ProductName: "Sweater", UnitPrice: 18, Quantity: 1},
	}

	merged := MergeCartItems(guest, user)
	assert.Len(t, merged, 3)
}

func TestMergeCartItemsCollisionKeepsLargerQuantity(t *testing.T) {
	guest := []models.GuestCartItem{
		{ProductID: 1, Size: "8", ProductName: "Polo", UnitPrice: 10, Quantity: 3},
	}
	user := []models.CartItem{
		{ProductID: 1, Size: "8", ProductName: "Polo", UnitPrice: 10, Quantity: 1},
		{ProductID: 1, Size: "10", ProductName: "Polo", UnitPrice: 10, Quantity: 2},
	}

	merged := MergeCartItems(guest, user)
	assert.Len(t, merged, 2, "same product in a different size is a distinct line")

	byKey := map[string]int{}
	for _, item := range merged {
		byKey[item.Size] = item.Quantity
	}
	assert.Equal(t, 3, byKey["8"], "larger quantity wins on collision")
	assert.Equal(t, 2, byKey["10"])
}

func TestMergeCartItemsIdempotent(t *testing.T) {
	guest := []models.GuestCartItem{
		{ProductID: 1, Size: "8", Quantity: 3},
	}
	user := []models.CartItem{
		{ProductID: 1, Size: "8", Quantity: 3},
	}

	merged := MergeCartItems(guest, user)
	assert.Len(t, merged, 1)
	assert.Equal(t, 3, merged[0].Quantity, "re-merging must not inflate quantities")
}

func TestDebouncerCoalesces(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(30 * time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Trigger(func() { runs.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load(), "rapid triggers should coalesce into one run")
}

func TestDebouncerRunsAgainAfterQuietPeriod(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(10 * time.Millisecond)

	d.Trigger(func() { runs.Add(1) })
	time.Sleep(30 * time.Millisecond)
	d.Trigger(func() { runs.Add(1) })
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, int32(2), runs.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)

	d.Trigger(func() { runs.Add(1) })
	d.Stop()
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, runs.Load())
}

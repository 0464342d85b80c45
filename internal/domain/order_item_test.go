package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestNewOrderItem_SnapshotsProduct(t *testing.T) {
	product := Product{
		ID:        5,
		SKU:       "PRD-20260831-A1B2",
		Name:      "Kopi Susu",
		Price:     10,
		CostPrice: floatPtr(6),
	}

	item := NewOrderItem(product, 2, nil)

	assert.Equal(t, 5, item.ProductID)
	assert.Equal(t, "Kopi Susu", item.ProductName)
	assert.Equal(t, "PRD-20260831-A1B2", item.ProductSKU)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 10.0, item.Price)
	assert.Equal(t, 20.0, item.Subtotal)
}

func TestNewOrderItem_CustomPriceOverridesCatalog(t *testing.T) {
	product := Product{ID: 5, Name: "Kopi Susu", Price: 10}

	item := NewOrderItem(product, 3, floatPtr(8))

	assert.Equal(t, 8.0, item.Price)
	assert.Equal(t, 24.0, item.Subtotal)
}

func TestOrderItem_Profit(t *testing.T) {
	item := OrderItem{Quantity: 2, Price: 10, CostPrice: floatPtr(6)}
	assert.Equal(t, 8.0, item.Profit())

	noCost := OrderItem{Quantity: 2, Price: 10}
	assert.Equal(t, 0.0, noCost.Profit())
}

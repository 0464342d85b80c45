package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_StockStatus(t *testing.T) {
	assert.Equal(t, StockStatusOutOfStock, Product{Stock: 0, MinStock: 5}.StockStatus())
	assert.Equal(t, StockStatusLowStock, Product{Stock: 3, MinStock: 5}.StockStatus())
	assert.Equal(t, StockStatusLowStock, Product{Stock: 5, MinStock: 5}.StockStatus())
	assert.Equal(t, StockStatusInStock, Product{Stock: 6, MinStock: 5}.StockStatus())
}

func TestProduct_CanFulfill(t *testing.T) {
	product := Product{Stock: 5}

	assert.True(t, product.CanFulfill(5))
	assert.True(t, product.CanFulfill(1))
	assert.False(t, product.CanFulfill(6))
}

func TestProduct_IsLowStock(t *testing.T) {
	assert.False(t, Product{Stock: 0, MinStock: 5}.IsLowStock())
	assert.True(t, Product{Stock: 4, MinStock: 5}.IsLowStock())
	assert.False(t, Product{Stock: 10, MinStock: 5}.IsLowStock())
}

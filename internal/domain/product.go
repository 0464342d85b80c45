package domain

import "time"

const DefaultMinStock = 5

type Product struct {
	ID          int
	MerchantID  int
	CategoryID  *int
	SKU         string
	Name        string
	Description *string
	Price       float64
	CostPrice   *float64
	Stock       int
	MinStock    int
	Unit        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

func (p Product) StockStatus() string {
	if p.Stock <= 0 {
		return StockStatusOutOfStock
	}
	if p.Stock <= p.MinStock {
		return StockStatusLowStock
	}
	return StockStatusInStock
}

func (p Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.MinStock
}

func (p Product) CanFulfill(quantity int) bool {
	return p.Stock >= quantity
}

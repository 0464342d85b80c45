package domain

import "time"

// OrderItem snapshots the product at order time. Name, SKU and prices are
// copied so historical orders survive later catalog edits.
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   int
	ProductName string
	ProductSKU  string
	Quantity    int
	Price       float64
	CostPrice   *float64
	Subtotal    float64
	CreatedAt   time.Time
}

func NewOrderItem(product Product, quantity int, customPrice *float64) OrderItem {
	price := product.Price
	if customPrice != nil {
		price = *customPrice
	}

	return OrderItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductSKU:  product.SKU,
		Quantity:    quantity,
		Price:       price,
		CostPrice:   product.CostPrice,
		Subtotal:    price * float64(quantity),
	}
}

func (i OrderItem) Profit() float64 {
	if i.CostPrice == nil {
		return 0
	}
	return (i.Price - *i.CostPrice) * float64(i.Quantity)
}

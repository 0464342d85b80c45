package domain

import "time"

type Customer struct {
	ID          int
	MerchantID  int
	Code        string
	Name        string
	Email       *string
	Phone       *string
	Address     *string
	TotalOrders int
	TotalSpent  float64
	LastOrderAt *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CustomerStats is the derived aggregate view over a customer's orders. It is
// never authoritative: it must always be reproducible by rescanning the
// customer's order history.
type CustomerStats struct {
	TotalOrders int
	TotalSpent  float64
	LastOrderAt *time.Time
}

func (c Customer) AverageOrderValue() float64 {
	if c.TotalOrders == 0 {
		return 0
	}
	return c.TotalSpent / float64(c.TotalOrders)
}

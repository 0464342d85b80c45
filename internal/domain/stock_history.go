package domain

import "time"

const (
	StockChangeIncrease   = "increase"
	StockChangeDecrease   = "decrease"
	StockChangeAdjustment = "adjustment"
)

// StockHistory is the append-only record of a single stock mutation. Entries
// are created once and never updated or deleted; the product's stock column is
// a cached running sum of them.
type StockHistory struct {
	ID        uint
	ProductID int
	ActorID   int
	OrderID   *uint
	Type      string
	Quantity  int
	OldStock  int
	NewStock  int
	Reason    string
	Notes     *string
	CreatedAt time.Time
}

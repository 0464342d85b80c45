package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"warung/internal/domain"
)

type OrderAggregator interface {
	CustomerAggregates(ctx context.Context, tx *sql.Tx, customerID int) (domain.CustomerStats, error)
}

type CustomerRepository interface {
	UpdateStats(ctx context.Context, tx *sql.Tx, customerID int, totalOrders int, totalSpent float64, lastOrderAt *time.Time) error
}

// StatsProjector maintains the denormalized customer counters. One algorithm,
// one trigger: a full rescan of the customer's orders whenever an order
// completes. The counters are a cache and can be rebuilt at any time by
// calling Recompute again.
type StatsProjector struct {
	orders    OrderAggregator
	customers CustomerRepository
	logger    *zap.Logger
}

func NewStatsProjector(
	orders OrderAggregator,
	customers CustomerRepository,
	logger *zap.Logger,
) *StatsProjector {
	return &StatsProjector{
		orders:    orders,
		customers: customers,
		logger:    logger,
	}
}

// Recompute runs inside the caller's transaction so the stats update commits
// or rolls back together with the order mutation that triggered it.
func (p *StatsProjector) Recompute(ctx context.Context, tx *sql.Tx, customerID int) (domain.CustomerStats, error) {
	stats, err := p.orders.CustomerAggregates(ctx, tx, customerID)
	if err != nil {
		return domain.CustomerStats{}, err
	}

	if err := p.customers.UpdateStats(ctx, tx, customerID, stats.TotalOrders, stats.TotalSpent, stats.LastOrderAt); err != nil {
		return domain.CustomerStats{}, err
	}

	p.logger.Debug("customer stats recomputed",
		zap.Int("customerId", customerID),
		zap.Int("totalOrders", stats.TotalOrders),
		zap.Float64("totalSpent", stats.TotalSpent))

	return stats, nil
}

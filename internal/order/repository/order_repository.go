package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"warung/internal/domain"
	"warung/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, merchant_id, customer_id, order_code, status, payment_status,
		       subtotal, tax, discount, shipping_cost, total_price, paid_amount,
		       change_amount, notes, ordered_at, completed_at, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.MerchantID, &o.CustomerID, &o.OrderCode, &o.Status, &o.PaymentStatus,
		&o.Subtotal, &o.Tax, &o.Discount, &o.ShippingCost, &o.TotalPrice, &o.PaidAmount,
		&o.ChangeAmount, &o.Notes, &o.OrderedAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `
		INSERT INTO orders (merchant_id, customer_id, order_code, status, payment_status,
		                    subtotal, tax, discount, shipping_cost, total_price,
		                    paid_amount, change_amount, notes, ordered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		order.MerchantID, order.CustomerID, order.OrderCode, order.Status,
		order.PaymentStatus, order.Subtotal, order.Tax, order.Discount,
		order.ShippingCost, order.TotalPrice, order.PaidAmount, order.ChangeAmount,
		order.Notes, order.OrderedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ?`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// FindByIDForUpdate serializes concurrent mutations of the same order: status
// transitions and payment recording both lock the row first.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ? FOR UPDATE`, orderColumns)

	order, err := scanOrder(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order for update: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string, completedAt *time.Time) error {
	query := `UPDATE orders SET status = ?, completed_at = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, status, completedAt, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) UpdateTotals(ctx context.Context, tx *sql.Tx, id uint, subtotal, totalPrice float64) error {
	query := `UPDATE orders SET subtotal = ?, total_price = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, subtotal, totalPrice, id)
	if err != nil {
		return fmt.Errorf("updating order totals: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) UpdatePayment(ctx context.Context, tx *sql.Tx, id uint, paidAmount, changeAmount float64, paymentStatus string) error {
	query := `UPDATE orders SET paid_amount = ?, change_amount = ?, payment_status = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, paidAmount, changeAmount, paymentStatus, id)
	if err != nil {
		return fmt.Errorf("updating order payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// CustomerAggregates rescans a customer's orders in full. It is the single
// source for customer stats so the incremental and from-scratch paths cannot
// drift apart.
func (r *MySQLOrderRepository) CustomerAggregates(ctx context.Context, tx *sql.Tx, customerID int) (domain.CustomerStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0), MAX(ordered_at)
		FROM orders
		WHERE customer_id = ?`

	var stats domain.CustomerStats
	err := tx.QueryRowContext(ctx, query, customerID).Scan(
		&stats.TotalOrders, &stats.TotalSpent, &stats.LastOrderAt,
	)
	if err != nil {
		return domain.CustomerStats{}, fmt.Errorf("aggregating customer orders: %w", err)
	}

	return stats, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"warung/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

const orderItemColumns = `id, order_id, product_id, product_name, product_sku,
		       quantity, price, cost_price, subtotal, created_at`

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, product_name, product_sku,
		                         quantity, price, cost_price, subtotal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		item.OrderID, item.ProductID, item.ProductName, item.ProductSKU,
		item.Quantity, item.Price, item.CostPrice, item.Subtotal,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderItemRepository) ListByOrder(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_items WHERE order_id = ? ORDER BY id`, orderItemColumns)

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

// ListByOrderInTx reads the items inside the caller's transaction. The cancel
// path uses this so stock reversal restores the exact quantities deducted at
// order time.
func (r *MySQLOrderItemRepository) ListByOrderInTx(ctx context.Context, tx *sql.Tx, orderID uint) ([]domain.OrderItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_items WHERE order_id = ? ORDER BY id`, orderItemColumns)

	rows, err := tx.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

func scanOrderItems(rows *sql.Rows) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductSKU, &item.Quantity, &item.Price, &item.CostPrice,
			&item.Subtotal, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}

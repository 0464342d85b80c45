package repository

import (
	"context"
	"database/sql"
	"fmt"

	"warung/internal/domain"
)

type MySQLStockHistoryRepository struct {
	db *sql.DB
}

func NewMySQLStockHistoryRepository(db *sql.DB) *MySQLStockHistoryRepository {
	return &MySQLStockHistoryRepository{db: db}
}

// Insert appends one history entry. There is deliberately no update or delete
// on this table.
func (r *MySQLStockHistoryRepository) Insert(ctx context.Context, tx *sql.Tx, entry domain.StockHistory) (uint, error) {
	query := `
		INSERT INTO stock_histories (product_id, actor_id, order_id, type, quantity,
		                             old_stock, new_stock, reason, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		entry.ProductID, entry.ActorID, entry.OrderID, entry.Type, entry.Quantity,
		entry.OldStock, entry.NewStock, entry.Reason, entry.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting stock history: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLStockHistoryRepository) ListByProduct(ctx context.Context, productID, limit int) ([]domain.StockHistory, error) {
	query := `
		SELECT id, product_id, actor_id, order_id, type, quantity,
		       old_stock, new_stock, reason, notes, created_at
		FROM stock_histories
		WHERE product_id = ?
		ORDER BY id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying stock history: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockHistory
	for rows.Next() {
		var h domain.StockHistory
		err := rows.Scan(
			&h.ID, &h.ProductID, &h.ActorID, &h.OrderID, &h.Type, &h.Quantity,
			&h.OldStock, &h.NewStock, &h.Reason, &h.Notes, &h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stock history row: %w", err)
		}
		entries = append(entries, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock history rows: %w", err)
	}

	return entries, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"warung/internal/domain"
)

type MySQLPaymentRepository struct {
	db *sql.DB
}

func NewMySQLPaymentRepository(db *sql.DB) *MySQLPaymentRepository {
	return &MySQLPaymentRepository{db: db}
}

// Insert appends a payment. The journal is append-only: nothing updates or
// deletes payment rows.
func (r *MySQLPaymentRepository) Insert(ctx context.Context, tx *sql.Tx, payment domain.Payment) (uint, error) {
	query := `
		INSERT INTO payments (order_id, actor_id, amount, method, reference, notes)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		payment.OrderID, payment.ActorID, payment.Amount, payment.Method,
		payment.Reference, payment.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting payment: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLPaymentRepository) ListByOrder(ctx context.Context, orderID uint) ([]domain.Payment, error) {
	query := `
		SELECT id, order_id, actor_id, amount, method, reference, notes, created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.ID, &p.OrderID, &p.ActorID, &p.Amount, &p.Method,
			&p.Reference, &p.Notes, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

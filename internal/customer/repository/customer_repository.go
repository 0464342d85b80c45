package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"warung/internal/domain"
	"warung/internal/errors"
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

const customerColumns = `id, merchant_id, code, name, email, phone, address,
		       total_orders, total_spent, last_order_at, is_active, created_at, updated_at`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID, &c.MerchantID, &c.Code, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.TotalOrders, &c.TotalSpent, &c.LastOrderAt, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, customerID, merchantID int) (*domain.Customer, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM customers
		WHERE id = ? AND merchant_id = ?`, customerColumns)

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, customerID, merchantID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", customerID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return customer, nil
}

func (r *MySQLCustomerRepository) Insert(ctx context.Context, customer domain.Customer) (int, error) {
	query := `
		INSERT INTO customers (merchant_id, code, name, email, phone, address, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		customer.MerchantID, customer.Code, customer.Name, customer.Email,
		customer.Phone, customer.Address, customer.IsActive,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLCustomerRepository) UpdateStats(ctx context.Context, tx *sql.Tx, customerID int, totalOrders int, totalSpent float64, lastOrderAt *time.Time) error {
	query := `UPDATE customers SET total_orders = ?, total_spent = ?, last_order_at = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, totalOrders, totalSpent, lastOrderAt, customerID)
	if err != nil {
		return fmt.Errorf("updating customer stats: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", customerID))
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"warung/internal/domain"
	"warung/internal/errors"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

const productColumns = `id, merchant_id, category_id, sku, name, description, price, cost_price,
		       stock, min_stock, unit, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.MerchantID, &p.CategoryID, &p.SKU, &p.Name, &p.Description,
		&p.Price, &p.CostPrice, &p.Stock, &p.MinStock, &p.Unit, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLProductRepository) FindByID(ctx context.Context, productID, merchantID int) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = ? AND merchant_id = ?`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, productID, merchantID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return product, nil
}

// FindByIDForUpdate locks the product row for the duration of the enclosing
// transaction. Every check-and-mutate on stock goes through this lock.
func (r *MySQLProductRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, productID, merchantID int) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = ? AND merchant_id = ?
		FOR UPDATE`, productColumns)

	product, err := scanProduct(tx.QueryRowContext(ctx, query, productID, merchantID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product for update: %w", err)
	}

	return product, nil
}

// DecrementStock is the atomic conditional decrement: it only applies when the
// row still holds at least quantity units. Returns false when no row matched.
func (r *MySQLProductRepository) DecrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error) {
	query := `UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`

	result, err := tx.ExecContext(ctx, query, quantity, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("decrementing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLProductRepository) IncrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) error {
	query := `UPDATE products SET stock = stock + ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return fmt.Errorf("incrementing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}

	return nil
}

func (r *MySQLProductRepository) SetStock(ctx context.Context, tx *sql.Tx, productID, newStock int) error {
	query := `UPDATE products SET stock = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, newStock, productID)
	if err != nil {
		return fmt.Errorf("setting stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}

	return nil
}

func (r *MySQLProductRepository) Insert(ctx context.Context, product domain.Product) (int, error) {
	query := `
		INSERT INTO products (merchant_id, category_id, sku, name, description, price,
		                      cost_price, stock, min_stock, unit, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		product.MerchantID, product.CategoryID, product.SKU, product.Name,
		product.Description, product.Price, product.CostPrice, product.Stock,
		product.MinStock, product.Unit, product.IsActive,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLProductRepository) FindByIDsAndMerchant(ctx context.Context, ids []int, merchantID int) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, merchantID)

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id IN (%s)
		  AND merchant_id = ?`,
		productColumns, strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProductRepository) FindLowStock(ctx context.Context, merchantID int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE merchant_id = ?
		  AND is_active = 1
		  AND stock <= min_stock
		ORDER BY stock ASC`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("querying low stock products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProductRepository) CountLowStock(ctx context.Context, merchantID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM products
		WHERE merchant_id = ? AND is_active = 1 AND stock <= min_stock`

	var count int
	if err := r.db.QueryRowContext(ctx, query, merchantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting low stock products: %w", err)
	}

	return count, nil
}

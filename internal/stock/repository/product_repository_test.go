package repository

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warung/internal/domain"
	apperrors "warung/internal/errors"
	"warung/internal/testutil"
)

// Unit Tests

func TestNewMySQLProductRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLProductRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func insertTestProduct(t *testing.T, db *sql.DB, merchantID int, sku string, stock, minStock int) int {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO products (merchant_id, sku, name, price, cost_price, stock, min_stock, unit, is_active)
		VALUES (?, ?, 'Test Product', 10.00, 6.00, ?, ?, 'pcs', 1)
	`, merchantID, sku, stock, minStock)
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func TestProductRepository_FindByID_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := insertTestProduct(t, db, 1, "PRD-20250101-AAAA", 100, 5)

	product, err := repo.FindByID(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, id, product.ID)
	assert.Equal(t, 1, product.MerchantID)
	assert.Equal(t, 100, product.Stock)
	assert.Equal(t, 5, product.MinStock)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := repo.FindByID(context.Background(), 9999, 1)
	assert.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_FindByID_DifferentMerchant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := insertTestProduct(t, db, 1, "PRD-20250101-AAAB", 100, 5)

	_, err := repo.FindByID(context.Background(), id, 2)
	assert.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_DecrementStock_Applied(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := insertTestProduct(t, db, 1, "PRD-20250101-AAAC", 10, 5)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	applied, err := repo.DecrementStock(context.Background(), tx, id, 4)
	require.NoError(t, err)
	assert.True(t, applied)
	require.NoError(t, tx.Commit())

	product, err := repo.FindByID(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, product.Stock)
}

func TestProductRepository_DecrementStock_GuardRejects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := insertTestProduct(t, db, 1, "PRD-20250101-AAAD", 3, 5)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	applied, err := repo.DecrementStock(context.Background(), tx, id, 4)
	require.NoError(t, err)
	assert.False(t, applied)
	require.NoError(t, tx.Commit())

	product, err := repo.FindByID(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock, "rejected decrement must not touch stock")
}

// Two transactions race for 3 units out of 5. Exactly one of them may win;
// stock never goes negative.
func TestProductRepository_DecrementStock_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := insertTestProduct(t, db, 1, "PRD-20250101-AAAE", 5, 5)

	results := make([]bool, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()

			tx, err := db.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
			if err != nil {
				t.Errorf("begin tx: %v", err)
				return
			}
			defer tx.Rollback()

			applied, err := repo.DecrementStock(context.Background(), tx, id, 3)
			if err != nil {
				t.Errorf("decrement: %v", err)
				return
			}
			if err := tx.Commit(); err != nil {
				t.Errorf("commit: %v", err)
				return
			}
			results[slot] = applied
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, applied := range results {
		if applied {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one of the two decrements must apply")

	product, err := repo.FindByID(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock)
}

func TestProductRepository_IncrementStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := insertTestProduct(t, db, 1, "PRD-20250101-AAAF", 10, 5)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	err = repo.IncrementStock(context.Background(), tx, id, 7)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	product, err := repo.FindByID(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, 17, product.Stock)
}

func TestProductRepository_IncrementStock_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.IncrementStock(context.Background(), tx, 9999, 7)
	assert.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_FindLowStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	insertTestProduct(t, db, 1, "PRD-20250101-AAB1", 2, 5)
	insertTestProduct(t, db, 1, "PRD-20250101-AAB2", 5, 5)
	insertTestProduct(t, db, 1, "PRD-20250101-AAB3", 50, 5)
	insertTestProduct(t, db, 2, "PRD-20250101-AAB4", 1, 5)

	products, err := repo.FindLowStock(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 2, products[0].Stock, "lowest stock first")
	assert.Equal(t, 5, products[1].Stock)

	count, err := repo.CountLowStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestProductRepository_Insert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	costPrice := 8.0
	id, err := repo.Insert(context.Background(), domain.Product{
		MerchantID: 1,
		SKU:        domain.NewSKU(),
		Name:       "Inserted Product",
		Price:      12.5,
		CostPrice:  &costPrice,
		Stock:      20,
		MinStock:   domain.DefaultMinStock,
		Unit:       "pcs",
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	product, err := repo.FindByID(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, "Inserted Product", product.Name)
	assert.Equal(t, 20, product.Stock)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go.uber.org/zap"

	"warung/internal/domain"
	apperrors "warung/internal/errors"
)

// Mock implementations

type mockProductRepository struct {
	FindByIDForUpdateFunc func(ctx context.Context, tx *sql.Tx, productID, merchantID int) (*domain.Product, error)
	DecrementStockFunc    func(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error)
	IncrementStockFunc    func(ctx context.Context, tx *sql.Tx, productID, quantity int) error
	SetStockFunc          func(ctx context.Context, tx *sql.Tx, productID, newStock int) error
}

func (m *mockProductRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, productID, merchantID int) (*domain.Product, error) {
	return m.FindByIDForUpdateFunc(ctx, tx, productID, merchantID)
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error) {
	return m.DecrementStockFunc(ctx, tx, productID, quantity)
}

func (m *mockProductRepository) IncrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) error {
	return m.IncrementStockFunc(ctx, tx, productID, quantity)
}

func (m *mockProductRepository) SetStock(ctx context.Context, tx *sql.Tx, productID, newStock int) error {
	return m.SetStockFunc(ctx, tx, productID, newStock)
}

type mockStockHistoryRepository struct {
	InsertFunc func(ctx context.Context, tx *sql.Tx, entry domain.StockHistory) (uint, error)
}

func (m *mockStockHistoryRepository) Insert(ctx context.Context, tx *sql.Tx, entry domain.StockHistory) (uint, error) {
	return m.InsertFunc(ctx, tx, entry)
}

func productWithStock(stock int) *mockProductRepository {
	return &mockProductRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx *sql.Tx, productID, merchantID int) (*domain.Product, error) {
			return &domain.Product{ID: productID, MerchantID: merchantID, Stock: stock, IsActive: true}, nil
		},
		DecrementStockFunc: func(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error) {
			return true, nil
		},
		IncrementStockFunc: func(ctx context.Context, tx *sql.Tx, productID, quantity int) error {
			return nil
		},
		SetStockFunc: func(ctx context.Context, tx *sql.Tx, productID, newStock int) error {
			return nil
		},
	}
}

func recordingHistory(entries *[]domain.StockHistory) *mockStockHistoryRepository {
	return &mockStockHistoryRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, entry domain.StockHistory) (uint, error) {
			*entries = append(*entries, entry)
			return uint(len(*entries)), nil
		},
	}
}

// Tests

func TestDecrease_Success(t *testing.T) {
	ctx := context.Background()

	var entries []domain.StockHistory
	svc := NewLedgerService(productWithStock(10), recordingHistory(&entries), zap.NewNop())

	entry, err := svc.Decrease(ctx, (*sql.Tx)(nil), 1, 1, 5, 3, "order", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.OldStock != 10 || entry.NewStock != 7 {
		t.Errorf("expected old=10 new=7, got old=%d new=%d", entry.OldStock, entry.NewStock)
	}
	if entry.Type != domain.StockChangeDecrease {
		t.Errorf("expected type %s, got %s", domain.StockChangeDecrease, entry.Type)
	}
	if entry.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", entry.Quantity)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one history entry, got %d", len(entries))
	}
}

func TestDecrease_InsufficientStock(t *testing.T) {
	ctx := context.Background()

	historyRepo := &mockStockHistoryRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, entry domain.StockHistory) (uint, error) {
			return 0, errors.New("should not be called")
		},
	}
	productRepo := productWithStock(2)
	productRepo.DecrementStockFunc = func(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error) {
		return false, errors.New("should not be called")
	}

	svc := NewLedgerService(productRepo, historyRepo, zap.NewNop())

	_, err := svc.Decrease(ctx, (*sql.Tx)(nil), 1, 1, 5, 3, "order", nil)

	stockErr, ok := apperrors.IsInsufficientStockError(err)
	if !ok {
		t.Fatalf("expected InsufficientStockError, got %T", err)
	}
	if stockErr.Available != 2 || stockErr.Requested != 3 {
		t.Errorf("expected available=2 requested=3, got available=%d requested=%d",
			stockErr.Available, stockErr.Requested)
	}
}

func TestDecrease_GuardRejected(t *testing.T) {
	ctx := context.Background()

	productRepo := productWithStock(10)
	productRepo.DecrementStockFunc = func(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error) {
		return false, nil
	}
	historyRepo := &mockStockHistoryRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, entry domain.StockHistory) (uint, error) {
			return 0, errors.New("should not be called")
		},
	}

	svc := NewLedgerService(productRepo, historyRepo, zap.NewNop())

	_, err := svc.Decrease(ctx, (*sql.Tx)(nil), 1, 1, 5, 3, "order", nil)

	if _, ok := apperrors.IsInsufficientStockError(err); !ok {
		t.Errorf("expected InsufficientStockError, got %T", err)
	}
}

func TestDecrease_NonPositiveQuantity(t *testing.T) {
	ctx := context.Background()

	svc := NewLedgerService(productWithStock(10), recordingHistory(&[]domain.StockHistory{}), zap.NewNop())

	for _, quantity := range []int{0, -1} {
		_, err := svc.Decrease(ctx, (*sql.Tx)(nil), 1, 1, 5, quantity, "order", nil)
		if _, ok := apperrors.IsValidationError(err); !ok {
			t.Errorf("quantity %d: expected ValidationError, got %T", quantity, err)
		}
	}
}

func TestDecrease_CarriesOrderID(t *testing.T) {
	ctx := context.Background()

	var entries []domain.StockHistory
	svc := NewLedgerService(productWithStock(10), recordingHistory(&entries), zap.NewNop())

	orderID := uint(42)
	_, err := svc.Decrease(ctx, (*sql.Tx)(nil), 1, 1, 5, 3, "order", &orderID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entries[0].OrderID == nil || *entries[0].OrderID != 42 {
		t.Errorf("expected history entry linked to order 42, got %v", entries[0].OrderID)
	}
}

func TestIncrease_Success(t *testing.T) {
	ctx := context.Background()

	var entries []domain.StockHistory
	svc := NewLedgerService(productWithStock(7), recordingHistory(&entries), zap.NewNop())

	entry, err := svc.Increase(ctx, (*sql.Tx)(nil), 1, 1, 5, 4, "restock", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.OldStock != 7 || entry.NewStock != 11 {
		t.Errorf("expected old=7 new=11, got old=%d new=%d", entry.OldStock, entry.NewStock)
	}
	if entry.Type != domain.StockChangeIncrease {
		t.Errorf("expected type %s, got %s", domain.StockChangeIncrease, entry.Type)
	}
}

func TestIncrease_NonPositiveQuantity(t *testing.T) {
	ctx := context.Background()

	svc := NewLedgerService(productWithStock(7), recordingHistory(&[]domain.StockHistory{}), zap.NewNop())

	_, err := svc.Increase(ctx, (*sql.Tx)(nil), 1, 1, 5, 0, "restock", nil)
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestAdjust_RecordsDelta(t *testing.T) {
	ctx := context.Background()

	var entries []domain.StockHistory
	svc := NewLedgerService(productWithStock(10), recordingHistory(&entries), zap.NewNop())

	entry, err := svc.Adjust(ctx, (*sql.Tx)(nil), 1, 1, 5, 4, "inventory_count", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Type != domain.StockChangeAdjustment {
		t.Errorf("expected type %s, got %s", domain.StockChangeAdjustment, entry.Type)
	}
	if entry.Quantity != 6 {
		t.Errorf("expected quantity 6 (delta of 10->4), got %d", entry.Quantity)
	}
	if entry.OldStock != 10 || entry.NewStock != 4 {
		t.Errorf("expected old=10 new=4, got old=%d new=%d", entry.OldStock, entry.NewStock)
	}
}

func TestAdjust_NegativeStock(t *testing.T) {
	ctx := context.Background()

	svc := NewLedgerService(productWithStock(10), recordingHistory(&[]domain.StockHistory{}), zap.NewNop())

	_, err := svc.Adjust(ctx, (*sql.Tx)(nil), 1, 1, 5, -1, "inventory_count", nil)
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestAdjust_NoOpRejected(t *testing.T) {
	ctx := context.Background()

	productRepo := productWithStock(10)
	productRepo.SetStockFunc = func(ctx context.Context, tx *sql.Tx, productID, newStock int) error {
		return errors.New("should not be called")
	}

	svc := NewLedgerService(productRepo, recordingHistory(&[]domain.StockHistory{}), zap.NewNop())

	_, err := svc.Adjust(ctx, (*sql.Tx)(nil), 1, 1, 5, 10, "inventory_count", nil)
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestDecrease_ProductNotFound(t *testing.T) {
	ctx := context.Background()

	productRepo := &mockProductRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx *sql.Tx, productID, merchantID int) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product not found")
		},
	}

	svc := NewLedgerService(productRepo, recordingHistory(&[]domain.StockHistory{}), zap.NewNop())

	_, err := svc.Decrease(ctx, (*sql.Tx)(nil), 1, 1, 5, 3, "order", nil)
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

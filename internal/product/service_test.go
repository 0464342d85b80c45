package product

import (
	"context"
	"regexp"
	"testing"

	"warung/internal/domain"
)

type mockRepository struct {
	InsertFunc               func(ctx context.Context, product domain.Product) (int, error)
	FindByIDFunc             func(ctx context.Context, productID, merchantID int) (*domain.Product, error)
	FindByIDsAndMerchantFunc func(ctx context.Context, ids []int, merchantID int) ([]domain.Product, error)
	FindLowStockFunc         func(ctx context.Context, merchantID int) ([]domain.Product, error)
	CountLowStockFunc        func(ctx context.Context, merchantID int) (int, error)
}

func (m *mockRepository) Insert(ctx context.Context, product domain.Product) (int, error) {
	return m.InsertFunc(ctx, product)
}

func (m *mockRepository) FindByID(ctx context.Context, productID, merchantID int) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, productID, merchantID)
}

func (m *mockRepository) FindByIDsAndMerchant(ctx context.Context, ids []int, merchantID int) ([]domain.Product, error) {
	return m.FindByIDsAndMerchantFunc(ctx, ids, merchantID)
}

func (m *mockRepository) FindLowStock(ctx context.Context, merchantID int) ([]domain.Product, error) {
	return m.FindLowStockFunc(ctx, merchantID)
}

func (m *mockRepository) CountLowStock(ctx context.Context, merchantID int) (int, error) {
	return m.CountLowStockFunc(ctx, merchantID)
}

var skuPattern = regexp.MustCompile(`^PRD-\d{8}-[0-9A-F]{4}$`)

func TestCreate_AppliesDefaults(t *testing.T) {
	ctx := context.Background()

	var inserted domain.Product
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, product domain.Product) (int, error) {
			inserted = product
			return 42, nil
		},
	}

	svc := NewService(repo)

	created, err := svc.Create(ctx, 1, CreateProductRequest{
		Name:  "Indomie Goreng",
		Price: 3.5,
		Stock: 40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID != 42 {
		t.Errorf("expected id 42, got %d", created.ID)
	}
	if inserted.MinStock != domain.DefaultMinStock {
		t.Errorf("expected default min stock %d, got %d", domain.DefaultMinStock, inserted.MinStock)
	}
	if inserted.Unit != "pcs" {
		t.Errorf("expected default unit pcs, got %s", inserted.Unit)
	}
	if !inserted.IsActive {
		t.Errorf("expected new product to be active")
	}
	if !skuPattern.MatchString(inserted.SKU) {
		t.Errorf("expected generated SKU, got %s", inserted.SKU)
	}
}

func TestCreate_KeepsExplicitValues(t *testing.T) {
	ctx := context.Background()

	var inserted domain.Product
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, product domain.Product) (int, error) {
			inserted = product
			return 1, nil
		},
	}

	svc := NewService(repo)

	_, err := svc.Create(ctx, 1, CreateProductRequest{
		Name:     "Beras 5kg",
		Price:    70,
		Stock:    10,
		MinStock: 2,
		Unit:     "sack",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inserted.MinStock != 2 {
		t.Errorf("expected min stock 2, got %d", inserted.MinStock)
	}
	if inserted.Unit != "sack" {
		t.Errorf("expected unit sack, got %s", inserted.Unit)
	}
}

func TestGetByIDsAndMerchant_SplitsFoundAndMissing(t *testing.T) {
	ctx := context.Background()

	repo := &mockRepository{
		FindByIDsAndMerchantFunc: func(ctx context.Context, ids []int, merchantID int) ([]domain.Product, error) {
			return []domain.Product{{ID: 1}, {ID: 3}}, nil
		},
	}

	svc := NewService(repo)

	found, notFound, err := svc.GetByIDsAndMerchant(ctx, []int{1, 2, 3, 4}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(found) != 2 {
		t.Errorf("expected 2 found, got %d", len(found))
	}
	if len(notFound) != 2 || notFound[0] != 2 || notFound[1] != 4 {
		t.Errorf("expected missing ids [2 4], got %v", notFound)
	}
}

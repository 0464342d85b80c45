package product

import (
	"context"

	"warung/internal/domain"
)

type productService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &productService{repo: repo}
}

// Create materializes a catalog product. The SKU is generated here, before
// the insert, never by a persistence-side hook.
func (s *productService) Create(ctx context.Context, merchantID int, req CreateProductRequest) (*domain.Product, error) {
	minStock := req.MinStock
	if minStock <= 0 {
		minStock = domain.DefaultMinStock
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	product := domain.Product{
		MerchantID:  merchantID,
		CategoryID:  req.CategoryID,
		SKU:         domain.NewSKU(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Stock:       req.Stock,
		MinStock:    minStock,
		Unit:        unit,
		IsActive:    true,
	}

	id, err := s.repo.Insert(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id

	return &product, nil
}

func (s *productService) GetByIDsAndMerchant(ctx context.Context, ids []int, merchantID int) ([]domain.Product, []int, error) {
	found, err := s.repo.FindByIDsAndMerchant(ctx, ids, merchantID)
	if err != nil {
		return nil, nil, err
	}

	foundSet := make(map[int]struct{}, len(found))
	for _, p := range found {
		foundSet[p.ID] = struct{}{}
	}

	var notFoundIDs []int
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			notFoundIDs = append(notFoundIDs, id)
		}
	}

	return found, notFoundIDs, nil
}

func (s *productService) ListLowStock(ctx context.Context, merchantID int) ([]domain.Product, error) {
	return s.repo.FindLowStock(ctx, merchantID)
}

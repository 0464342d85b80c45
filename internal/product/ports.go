package product

import (
	"context"

	"warung/internal/domain"
)

type UseCase interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	SearchProducts(ctx context.Context, req SearchProductsRequest) (*SearchProductsResponse, error)
	LowStock(ctx context.Context, merchantID int) (*LowStockResponse, error)
}

type Service interface {
	Create(ctx context.Context, merchantID int, req CreateProductRequest) (*domain.Product, error)
	GetByIDsAndMerchant(ctx context.Context, ids []int, merchantID int) (found []domain.Product, notFoundIDs []int, err error)
	ListLowStock(ctx context.Context, merchantID int) ([]domain.Product, error)
}

type Repository interface {
	Insert(ctx context.Context, product domain.Product) (int, error)
	FindByID(ctx context.Context, productID, merchantID int) (*domain.Product, error)
	FindByIDsAndMerchant(ctx context.Context, ids []int, merchantID int) ([]domain.Product, error)
	FindLowStock(ctx context.Context, merchantID int) ([]domain.Product, error)
	CountLowStock(ctx context.Context, merchantID int) (int, error)
}

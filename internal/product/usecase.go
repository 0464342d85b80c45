package product

import (
	"context"

	"warung/internal/domain"
)

type productUseCase struct {
	service Service
}

func NewUseCase(service Service) UseCase {
	return &productUseCase{service: service}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	created, err := uc.service.Create(ctx, req.MerchantID, req)
	if err != nil {
		return nil, err
	}

	dto := newProductDTO(*created)
	return &dto, nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, req SearchProductsRequest) (*SearchProductsResponse, error) {
	found, notFoundIDs, err := uc.service.GetByIDsAndMerchant(ctx, req.ProductIDs, req.MerchantID)
	if err != nil {
		return nil, err
	}

	products := make([]ProductDTO, 0, len(found))
	for _, p := range found {
		products = append(products, newProductDTO(p))
	}

	if notFoundIDs == nil {
		notFoundIDs = []int{}
	}

	return &SearchProductsResponse{
		Products: products,
		NotFound: notFoundIDs,
	}, nil
}

func (uc *productUseCase) LowStock(ctx context.Context, merchantID int) (*LowStockResponse, error) {
	low, err := uc.service.ListLowStock(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	products := make([]ProductDTO, 0, len(low))
	for _, p := range low {
		products = append(products, newProductDTO(p))
	}

	return &LowStockResponse{
		Count:    len(products),
		Products: products,
	}, nil
}

func newProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Unit:        p.Unit,
		StockStatus: p.StockStatus(),
		IsActive:    p.IsActive,
	}
}

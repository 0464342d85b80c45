package product

type CreateProductRequest struct {
	MerchantID  int      `json:"merchantId"`
	CategoryID  *int     `json:"categoryId"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	CostPrice   *float64 `json:"costPrice"`
	Stock       int      `json:"stock"`
	MinStock    int      `json:"minStock"`
	Unit        string   `json:"unit"`
}

type SearchProductsRequest struct {
	MerchantID int   `json:"merchantId"`
	ProductIDs []int `json:"productIds"`
}

type SearchProductsResponse struct {
	Products []ProductDTO `json:"products"`
	NotFound []int        `json:"notFound"`
}

type LowStockResponse struct {
	Count    int          `json:"count"`
	Products []ProductDTO `json:"products"`
}

type ProductDTO struct {
	ID          int      `json:"id"`
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	CostPrice   *float64 `json:"costPrice,omitempty"`
	Stock       int      `json:"stock"`
	MinStock    int      `json:"minStock"`
	Unit        string   `json:"unit"`
	StockStatus string   `json:"stockStatus"`
	IsActive    bool     `json:"isActive"`
}

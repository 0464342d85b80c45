package dto

type CreateOrderRequest struct {
	MerchantID   int                `json:"merchantId"`
	CustomerID   int                `json:"customerId"`
	Items        []OrderItemRequest `json:"items"`
	Tax          float64            `json:"tax"`
	Discount     float64            `json:"discount"`
	ShippingCost float64            `json:"shippingCost"`
	Notes        *string            `json:"notes"`
}

type OrderItemRequest struct {
	ProductID int      `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price"`
}

type AddItemRequest struct {
	MerchantID int      `json:"merchantId"`
	ProductID  int      `json:"productId"`
	Quantity   int      `json:"quantity"`
	Price      *float64 `json:"price"`
}

type TransitionRequest struct {
	MerchantID int    `json:"merchantId"`
	Status     string `json:"status"`
}

type RecordPaymentRequest struct {
	MerchantID int     `json:"merchantId"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Reference  *string `json:"reference"`
	Notes      *string `json:"notes"`
}

type StockAdjustmentRequest struct {
	MerchantID int     `json:"merchantId"`
	Type       string  `json:"type"`
	Quantity   int     `json:"quantity"`
	Reason     string  `json:"reason"`
	Notes      *string `json:"notes"`
}

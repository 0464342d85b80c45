package dto

import (
	"time"

	"warung/internal/domain"
)

type OrderResponse struct {
	TraceID       string            `json:"traceId"`
	ID            uint              `json:"id"`
	OrderCode     string            `json:"orderCode"`
	CustomerID    int               `json:"customerId"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"paymentStatus"`
	Subtotal      float64           `json:"subtotal"`
	Tax           float64           `json:"tax"`
	Discount      float64           `json:"discount"`
	ShippingCost  float64           `json:"shippingCost"`
	TotalPrice    float64           `json:"totalPrice"`
	PaidAmount    float64           `json:"paidAmount"`
	ChangeAmount  float64           `json:"changeAmount"`
	Remaining     float64           `json:"remainingAmount"`
	OrderedAt     time.Time         `json:"orderedAt"`
	CompletedAt   *time.Time        `json:"completedAt,omitempty"`
	Items         []OrderItemDTO    `json:"items"`
	Payments      []PaymentDTO      `json:"payments"`
	Timestamp     time.Time         `json:"timestamp"`
}

type OrderItemDTO struct {
	ID          uint    `json:"id"`
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	ProductSKU  string  `json:"productSku"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type PaymentDTO struct {
	ID        uint      `json:"id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Reference *string   `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type PaymentReceiptResponse struct {
	TraceID       string    `json:"traceId"`
	Payment       PaymentDTO `json:"payment"`
	PaidAmount    float64   `json:"paidAmount"`
	ChangeAmount  float64   `json:"changeAmount"`
	PaymentStatus string    `json:"paymentStatus"`
	Timestamp     time.Time `json:"timestamp"`
}

type StockHistoryDTO struct {
	ID        uint      `json:"id"`
	ProductID int       `json:"productId"`
	OrderID   *uint     `json:"orderId,omitempty"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	OldStock  int       `json:"oldStock"`
	NewStock  int       `json:"newStock"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewOrderResponse(traceID string, detail OrderDetail) OrderResponse {
	items := make([]OrderItemDTO, len(detail.Items))
	for i, item := range detail.Items {
		items[i] = OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		}
	}

	payments := make([]PaymentDTO, len(detail.Payments))
	for i, p := range detail.Payments {
		payments[i] = NewPaymentDTO(p)
	}

	o := detail.Order
	return OrderResponse{
		TraceID:       traceID,
		ID:            o.ID,
		OrderCode:     o.OrderCode,
		CustomerID:    o.CustomerID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Discount:      o.Discount,
		ShippingCost:  o.ShippingCost,
		TotalPrice:    o.TotalPrice,
		PaidAmount:    o.PaidAmount,
		ChangeAmount:  o.ChangeAmount,
		Remaining:     o.RemainingAmount(),
		OrderedAt:     o.OrderedAt,
		CompletedAt:   o.CompletedAt,
		Items:         items,
		Payments:      payments,
		Timestamp:     time.Now().UTC(),
	}
}

func NewPaymentDTO(p domain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        p.ID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}

func NewStockHistoryDTO(h domain.StockHistory) StockHistoryDTO {
	return StockHistoryDTO{
		ID:        h.ID,
		ProductID: h.ProductID,
		OrderID:   h.OrderID,
		Type:      h.Type,
		Quantity:  h.Quantity,
		OldStock:  h.OldStock,
		NewStock:  h.NewStock,
		Reason:    h.Reason,
		CreatedAt: h.CreatedAt,
	}
}

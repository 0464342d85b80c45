package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"warung/internal/domain"
	"warung/internal/dto"
	apperrors "warung/internal/errors"
)

type WorkflowUseCase interface {
	CreateOrder(ctx context.Context, actorID, merchantID int, input dto.CreateOrderInput) (*dto.OrderDetail, error)
	AddItem(ctx context.Context, actorID, merchantID int, orderID uint, input dto.OrderItemInput) (*dto.OrderDetail, error)
	TransitionStatus(ctx context.Context, actorID, merchantID int, orderID uint, target string) (*domain.Order, error)
	RecordPayment(ctx context.Context, actorID, merchantID int, orderID uint, input dto.PaymentInput) (*dto.PaymentReceipt, error)
	GetOrder(ctx context.Context, merchantID int, orderID uint) (*dto.OrderDetail, error)
}

type OrderController struct {
	useCase WorkflowUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase WorkflowUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateOrder(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	items := make([]dto.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = dto.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	input := dto.CreateOrderInput{
		CustomerID:   req.CustomerID,
		Items:        items,
		Tax:          req.Tax,
		Discount:     req.Discount,
		ShippingCost: req.ShippingCost,
		Notes:        req.Notes,
	}

	detail, err := c.useCase.CreateOrder(r.Context(), req.MerchantID, req.MerchantID, input)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewOrderResponse(traceID, *detail))
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	merchantID, err := strconv.Atoi(r.URL.Query().Get("merchantId"))
	if err != nil || merchantID <= 0 {
		c.writeValidationError(w, "invalid merchantId", apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: "merchantId must be a positive integer",
		})
		return
	}

	detail, err := c.useCase.GetOrder(r.Context(), merchantID, orderID)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(traceID, *detail))
}

func (c *OrderController) AddItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateAddItem(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	input := dto.OrderItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}

	detail, err := c.useCase.AddItem(r.Context(), req.MerchantID, req.MerchantID, orderID, input)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(traceID, *detail))
}

func (c *OrderController) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.MerchantID <= 0 {
		c.writeValidationError(w, "merchantId is required", apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: "merchantId must be a positive integer",
		})
		return
	}

	if req.Status == "" {
		c.writeValidationError(w, "status is required", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must not be empty",
		})
		return
	}

	order, err := c.useCase.TransitionStatus(r.Context(), req.MerchantID, req.MerchantID, orderID, req.Status)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(traceID, dto.OrderDetail{Order: *order}))
}

func (c *OrderController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.MerchantID <= 0 {
		c.writeValidationError(w, "merchantId is required", apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: "merchantId must be a positive integer",
		})
		return
	}

	input := dto.PaymentInput{
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	receipt, err := c.useCase.RecordPayment(r.Context(), req.MerchantID, req.MerchantID, orderID, input)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.PaymentReceiptResponse{
		TraceID:       traceID,
		Payment:       dto.NewPaymentDTO(receipt.Payment),
		PaidAmount:    receipt.Order.PaidAmount,
		ChangeAmount:  receipt.Order.ChangeAmount,
		PaymentStatus: receipt.Order.PaymentStatus,
		Timestamp:     time.Now().UTC(),
	})
}

func (c *OrderController) validateCreateOrder(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.MerchantID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: "merchantId must be a positive integer",
		})
	}
	if req.CustomerID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId must be a positive integer",
		})
	}
	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items",
				Message: "each item needs a positive productId and quantity",
			})
			break
		}
	}
	if req.Tax < 0 || req.Discount < 0 || req.ShippingCost < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "totals",
			Message: "tax, discount and shippingCost must not be negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid order request", details...)
	}
	return nil
}

func (c *OrderController) validateAddItem(req dto.AddItemRequest) error {
	var details []apperrors.ValidationDetail

	if req.MerchantID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: "merchantId must be a positive integer",
		})
	}
	if req.ProductID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}
	if req.Quantity <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid item request", details...)
	}
	return nil
}

func (c *OrderController) parseOrderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	orderIDStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil || orderID == 0 {
		c.writeValidationError(w, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return 0, false
	}
	return uint(orderID), true
}

func (c *OrderController) handleDomainError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	status, code := apperrors.HTTPStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.Error(err))
		message = "an unexpected error occurred"
	} else {
		logger.Warn("domain error", zap.String("code", code), zap.Error(err))
	}

	c.writeJSON(w, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

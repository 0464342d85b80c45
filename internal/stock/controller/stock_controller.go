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

type RestockUseCase interface {
	AdjustStock(ctx context.Context, actorID, merchantID, productID int, input dto.StockAdjustmentInput) (*domain.StockHistory, error)
	ProductHistory(ctx context.Context, merchantID, productID, limit int) ([]domain.StockHistory, error)
}

type StockController struct {
	useCase RestockUseCase
	logger  *zap.Logger
}

func NewStockController(useCase RestockUseCase, logger *zap.Logger) *StockController {
	return &StockController{
		useCase: useCase,
		logger:  logger,
	}
}

type stockChangeResponse struct {
	TraceID   string              `json:"traceId"`
	Entry     dto.StockHistoryDTO `json:"entry"`
	Timestamp time.Time           `json:"timestamp"`
}

type stockHistoryResponse struct {
	TraceID   string                `json:"traceId"`
	ProductID int                   `json:"productId"`
	Entries   []dto.StockHistoryDTO `json:"entries"`
	Timestamp time.Time             `json:"timestamp"`
}

func (c *StockController) AdjustStock(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	productID, ok := c.parseProductID(w, r)
	if !ok {
		return
	}

	var req dto.StockAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateAdjustment(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	input := dto.StockAdjustmentInput{
		Type:     req.Type,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		Notes:    req.Notes,
	}

	entry, err := c.useCase.AdjustStock(r.Context(), req.MerchantID, req.MerchantID, productID, input)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, stockChangeResponse{
		TraceID:   traceID,
		Entry:     dto.NewStockHistoryDTO(*entry),
		Timestamp: time.Now().UTC(),
	})
}

func (c *StockController) ProductHistory(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	productID, ok := c.parseProductID(w, r)
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

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := c.useCase.ProductHistory(r.Context(), merchantID, productID, limit)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	dtos := make([]dto.StockHistoryDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = dto.NewStockHistoryDTO(entry)
	}

	c.writeJSON(w, http.StatusOK, stockHistoryResponse{
		TraceID:   traceID,
		ProductID: productID,
		Entries:   dtos,
		Timestamp: time.Now().UTC(),
	})
}

func (c *StockController) validateAdjustment(req dto.StockAdjustmentRequest) error {
	var details []apperrors.ValidationDetail

	if req.MerchantID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: "merchantId must be a positive integer",
		})
	}
	if req.Type == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "type",
			Message: "type is required",
		})
	}
	if req.Type == domain.StockChangeIncrease && req.Quantity <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
	}
	if req.Type == domain.StockChangeAdjustment && req.Quantity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must not be negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid stock change request", details...)
	}
	return nil
}

func (c *StockController) parseProductID(w http.ResponseWriter, r *http.Request) (int, bool) {
	productIDStr := chi.URLParam(r, "productId")
	productID, err := strconv.Atoi(productIDStr)
	if err != nil || productID <= 0 {
		c.writeValidationError(w, "invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
		return 0, false
	}
	return productID, true
}

func (c *StockController) handleDomainError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
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

func (c *StockController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *StockController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
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

package product

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"warung/internal/dto"
	apperrors "warung/internal/errors"
)

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	created, err := c.useCase.CreateProduct(r.Context(), req)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, created)
}

func (c *Controller) HandleSearchProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req SearchProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateSearchRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	resp, err := c.useCase.SearchProducts(r.Context(), req)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	merchantID, err := strconv.Atoi(r.URL.Query().Get("merchantId"))
	if err != nil || merchantID <= 0 {
		c.writeValidationError(w, "invalid merchantId", apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: "merchantId must be a positive integer",
		})
		return
	}

	resp, err := c.useCase.LowStock(r.Context(), merchantID)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) validateCreateRequest(req CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.MerchantID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: "merchantId must be a positive integer",
		})
	}
	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if req.Price < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must not be negative",
		})
	}
	if req.Stock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must not be negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid product request", details...)
	}
	return nil
}

func (c *Controller) validateSearchRequest(req SearchProductsRequest) error {
	if req.MerchantID <= 0 {
		msg := "merchantId must be a positive integer"
		if req.MerchantID == 0 {
			msg = "merchantId is required"
		}
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "merchantId",
			Message: msg,
		})
	}

	if len(req.ProductIDs) == 0 {
		return apperrors.NewValidationError("productIds is required", apperrors.ValidationDetail{
			Field:   "productIds",
			Message: "productIds must not be empty",
		})
	}

	if len(req.ProductIDs) > 100 {
		msg := "productIds exceeds maximum of 100"
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "productIds",
			Message: msg,
		})
	}

	for _, id := range req.ProductIDs {
		if id <= 0 {
			msg := "each productId must be a positive integer"
			return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
				Field:   "productIds",
				Message: msg,
			})
		}
	}

	return nil
}

func (c *Controller) handleDomainError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
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

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

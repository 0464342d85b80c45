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

	"warung/internal/customer/usecase"
	"warung/internal/domain"
	"warung/internal/dto"
	apperrors "warung/internal/errors"
)

type CustomerUseCase interface {
	CreateCustomer(ctx context.Context, merchantID int, input usecase.CreateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, merchantID, customerID int) (*domain.Customer, error)
}

type CustomerController struct {
	useCase CustomerUseCase
	logger  *zap.Logger
}

func NewCustomerController(useCase CustomerUseCase, logger *zap.Logger) *CustomerController {
	return &CustomerController{
		useCase: useCase,
		logger:  logger,
	}
}

type createCustomerRequest struct {
	MerchantID int     `json:"merchantId"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

type customerDTO struct {
	ID          int        `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	TotalOrders int        `json:"totalOrders"`
	TotalSpent  float64    `json:"totalSpent"`
	LastOrderAt *time.Time `json:"lastOrderAt,omitempty"`
	IsActive    bool       `json:"isActive"`
}

type customerResponse struct {
	TraceID   string      `json:"traceId"`
	Customer  customerDTO `json:"customer"`
	Timestamp time.Time   `json:"timestamp"`
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateCustomer(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	input := usecase.CreateCustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	customer, err := c.useCase.CreateCustomer(r.Context(), req.MerchantID, input)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, customerResponse{
		TraceID:   traceID,
		Customer:  newCustomerDTO(*customer),
		Timestamp: time.Now().UTC(),
	})
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	customerIDStr := chi.URLParam(r, "customerId")
	customerID, err := strconv.Atoi(customerIDStr)
	if err != nil || customerID <= 0 {
		c.writeValidationError(w, "invalid customerId", apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId must be a positive integer",
		})
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

	customer, err := c.useCase.GetCustomer(r.Context(), merchantID, customerID)
	if err != nil {
		c.handleDomainError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, customerResponse{
		TraceID:   traceID,
		Customer:  newCustomerDTO(*customer),
		Timestamp: time.Now().UTC(),
	})
}

func (c *CustomerController) validateCreateCustomer(req createCustomerRequest) error {
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

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid customer request", details...)
	}
	return nil
}

func newCustomerDTO(customer domain.Customer) customerDTO {
	return customerDTO{
		ID:          customer.ID,
		Code:        customer.Code,
		Name:        customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Address:     customer.Address,
		TotalOrders: customer.TotalOrders,
		TotalSpent:  customer.TotalSpent,
		LastOrderAt: customer.LastOrderAt,
		IsActive:    customer.IsActive,
	}
}

func (c *CustomerController) handleDomainError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
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

func (c *CustomerController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *CustomerController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
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

package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"warung/internal/commons"
	"warung/internal/domain"
	"warung/internal/dto"
	apperrors "warung/internal/errors"
)

type OrderWorkflow interface {
	CreateOrder(ctx context.Context, actorID, merchantID int, input dto.CreateOrderInput) (*dto.OrderDetail, error)
	AddItem(ctx context.Context, actorID, merchantID int, orderID uint, input dto.OrderItemInput) (*dto.OrderDetail, error)
	TransitionStatus(ctx context.Context, actorID, merchantID int, orderID uint, target string) (*domain.Order, error)
	RecordPayment(ctx context.Context, actorID, merchantID int, orderID uint, input dto.PaymentInput) (*dto.PaymentReceipt, error)
}

type CustomerRepository interface {
	FindByID(ctx context.Context, customerID, merchantID int) (*domain.Customer, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

type OrderItemRepository interface {
	ListByOrder(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

type PaymentRepository interface {
	ListByOrder(ctx context.Context, orderID uint) ([]domain.Payment, error)
}

var validStatuses = map[string]struct{}{
	domain.OrderStatusPending:    {},
	domain.OrderStatusProcessing: {},
	domain.OrderStatusCompleted:  {},
	domain.OrderStatusCancelled:  {},
}

// WorkflowUseCase fronts the transactional workflow service: it pre-validates
// referenced entities outside the transaction and retries the whole operation
// on lock contention, a bounded number of times.
type WorkflowUseCase struct {
	workflow         OrderWorkflow
	customerRepo     CustomerRepository
	orderRepo        OrderRepository
	itemRepo         OrderItemRepository
	paymentRepo      PaymentRepository
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewWorkflowUseCase(
	workflow OrderWorkflow,
	customerRepo CustomerRepository,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	paymentRepo PaymentRepository,
	logger *zap.Logger,
	maxRetryAttempts int,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		workflow:         workflow,
		customerRepo:     customerRepo,
		orderRepo:        orderRepo,
		itemRepo:         itemRepo,
		paymentRepo:      paymentRepo,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *WorkflowUseCase) CreateOrder(ctx context.Context, actorID, merchantID int, input dto.CreateOrderInput) (*dto.OrderDetail, error) {
	uc.logger.Info("create order started",
		zap.Int("merchantId", merchantID),
		zap.Int("customerId", input.CustomerID),
		zap.Int("itemCount", len(input.Items)))

	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("order must contain at least one item")
	}

	if _, err := uc.customerRepo.FindByID(ctx, input.CustomerID, merchantID); err != nil {
		return nil, err
	}

	// Lock products in a stable order to avoid deadlocks between concurrent
	// order creations.
	sort.Slice(input.Items, func(i, j int) bool {
		return input.Items[i].ProductID < input.Items[j].ProductID
	})

	var detail *dto.OrderDetail
	err := commons.RetryOnDeadlock(uc.logger, uc.maxRetryAttempts, func() error {
		var opErr error
		detail, opErr = uc.workflow.CreateOrder(ctx, actorID, merchantID, input)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func (uc *WorkflowUseCase) AddItem(ctx context.Context, actorID, merchantID int, orderID uint, input dto.OrderItemInput) (*dto.OrderDetail, error) {
	var detail *dto.OrderDetail
	err := commons.RetryOnDeadlock(uc.logger, uc.maxRetryAttempts, func() error {
		var opErr error
		detail, opErr = uc.workflow.AddItem(ctx, actorID, merchantID, orderID, input)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func (uc *WorkflowUseCase) TransitionStatus(ctx context.Context, actorID, merchantID int, orderID uint, target string) (*domain.Order, error) {
	if _, ok := validStatuses[target]; !ok {
		return nil, apperrors.NewValidationError("unknown order status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, processing, completed, cancelled",
		})
	}

	var order *domain.Order
	err := commons.RetryOnDeadlock(uc.logger, uc.maxRetryAttempts, func() error {
		var opErr error
		order, opErr = uc.workflow.TransitionStatus(ctx, actorID, merchantID, orderID, target)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (uc *WorkflowUseCase) RecordPayment(ctx context.Context, actorID, merchantID int, orderID uint, input dto.PaymentInput) (*dto.PaymentReceipt, error) {
	var receipt *dto.PaymentReceipt
	err := commons.RetryOnDeadlock(uc.logger, uc.maxRetryAttempts, func() error {
		var opErr error
		receipt, opErr = uc.workflow.RecordPayment(ctx, actorID, merchantID, orderID, input)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

// GetOrder reads the full aggregate: order, items, payments.
func (uc *WorkflowUseCase) GetOrder(ctx context.Context, merchantID int, orderID uint) (*dto.OrderDetail, error) {
	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.MerchantID != merchantID {
		return nil, apperrors.NewForbiddenError("order does not belong to this merchant")
	}

	items, err := uc.itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &dto.OrderDetail{Order: *order, Items: items, Payments: payments}, nil
}

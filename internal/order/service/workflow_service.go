package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"warung/internal/domain"
	"warung/internal/dto"
	apperrors "warung/internal/errors"
)

const (
	stockReasonOrder          = "order"
	stockReasonOrderCancelled = "order_cancelled"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string, completedAt *time.Time) error
	UpdateTotals(ctx context.Context, tx *sql.Tx, id uint, subtotal, totalPrice float64) error
	UpdatePayment(ctx context.Context, tx *sql.Tx, id uint, paidAmount, changeAmount float64, paymentStatus string) error
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	ListByOrderInTx(ctx context.Context, tx *sql.Tx, orderID uint) ([]domain.OrderItem, error)
}

type PaymentRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, payment domain.Payment) (uint, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, productID, merchantID int) (*domain.Product, error)
}

type StockLedger interface {
	Decrease(ctx context.Context, tx *sql.Tx, actorID, merchantID, productID, quantity int, reason string, orderID *uint) (*domain.StockHistory, error)
	Increase(ctx context.Context, tx *sql.Tx, actorID, merchantID, productID, quantity int, reason string, orderID *uint) (*domain.StockHistory, error)
}

type StatsProjector interface {
	Recompute(ctx context.Context, tx *sql.Tx, customerID int) (domain.CustomerStats, error)
}

// WorkflowService runs every order-affecting operation as one transaction
// spanning the order, its items, the stock ledger, the payment journal and,
// on completion, the customer stats. A failure at any step rolls back the
// whole operation.
type WorkflowService struct {
	db          TransactionManager
	orderRepo   OrderRepository
	itemRepo    OrderItemRepository
	paymentRepo PaymentRepository
	productRepo ProductRepository
	ledger      StockLedger
	projector   StatsProjector
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewWorkflowService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	paymentRepo PaymentRepository,
	productRepo ProductRepository,
	ledger StockLedger,
	projector StatsProjector,
	logger *zap.Logger,
	txTimeout time.Duration,
) *WorkflowService {
	return &WorkflowService{
		db:          db,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		ledger:      ledger,
		projector:   projector,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

func (s *WorkflowService) begin(ctx context.Context) (*sql.Tx, context.Context, context.CancelFunc, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		cancel()
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, nil, nil, err
	}

	return tx, txCtx, cancel, nil
}

// CreateOrder reserves stock for every item and materializes the order in one
// transaction. All-or-nothing: a single insufficient product rejects the whole
// order and no stock mutation survives.
func (s *WorkflowService) CreateOrder(ctx context.Context, actorID, merchantID int, input dto.CreateOrderInput) (*dto.OrderDetail, error) {
	tx, txCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	// MySQL ignores rollback after commit.
	defer tx.Rollback()

	order := domain.Order{
		MerchantID:    merchantID,
		CustomerID:    input.CustomerID,
		OrderCode:     domain.NewOrderCode(),
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Tax:           input.Tax,
		Discount:      input.Discount,
		ShippingCost:  input.ShippingCost,
		Notes:         input.Notes,
		OrderedAt:     time.Now().UTC(),
	}
	order.CalculateTotals()

	orderID, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		item, err := s.addItemInTx(txCtx, tx, actorID, merchantID, orderID, in)
		if err != nil {
			s.logger.Warn("order creation rejected",
				zap.Uint("orderId", orderID),
				zap.Int("productId", in.ProductID),
				zap.Error(err))
			return nil, err
		}
		items = append(items, *item)
		order.Subtotal += item.Subtotal
	}

	order.CalculateTotals()
	if err := s.orderRepo.UpdateTotals(txCtx, tx, orderID, order.Subtotal, order.TotalPrice); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit order creation", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created",
		zap.Uint("orderId", orderID),
		zap.String("orderCode", order.OrderCode),
		zap.Int("itemCount", len(items)),
		zap.Float64("totalPrice", order.TotalPrice))

	return &dto.OrderDetail{Order: order, Items: items}, nil
}

// AddItem appends an item to an open order, reserving its stock and
// recomputing the order totals in the same transaction.
func (s *WorkflowService) AddItem(ctx context.Context, actorID, merchantID int, orderID uint, input dto.OrderItemInput) (*dto.OrderDetail, error) {
	tx, txCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	order, err := s.lockOwnedOrder(txCtx, tx, orderID, merchantID)
	if err != nil {
		return nil, err
	}

	if !order.IsOpen() {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("cannot add items to a %s order", order.Status))
	}

	if _, err := s.addItemInTx(txCtx, tx, actorID, merchantID, orderID, input); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByOrderInTx(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}

	order.Subtotal = 0
	for _, item := range items {
		order.Subtotal += item.Subtotal
	}
	order.CalculateTotals()

	if err := s.orderRepo.UpdateTotals(txCtx, tx, orderID, order.Subtotal, order.TotalPrice); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit item addition", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("item added to order",
		zap.Uint("orderId", orderID),
		zap.Int("productId", input.ProductID),
		zap.Float64("totalPrice", order.TotalPrice))

	return &dto.OrderDetail{Order: *order, Items: items}, nil
}

// addItemInTx locks the product, snapshots it into an order item and reserves
// its stock through the ledger. Caller owns the transaction.
func (s *WorkflowService) addItemInTx(ctx context.Context, tx *sql.Tx, actorID, merchantID int, orderID uint, input dto.OrderItemInput) (*domain.OrderItem, error) {
	product, err := s.productRepo.FindByIDForUpdate(ctx, tx, input.ProductID, merchantID)
	if err != nil {
		return nil, err
	}

	if !product.IsActive {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("product %d is not active", product.ID))
	}

	if _, err := s.ledger.Decrease(ctx, tx, actorID, merchantID, product.ID, input.Quantity, stockReasonOrder, &orderID); err != nil {
		return nil, err
	}

	item := domain.NewOrderItem(*product, input.Quantity, input.Price)
	item.OrderID = orderID

	itemID, err := s.itemRepo.Insert(ctx, tx, item)
	if err != nil {
		return nil, err
	}
	item.ID = itemID

	return &item, nil
}

// TransitionStatus moves the order through its lifecycle. Completion triggers
// the customer stats projection; cancellation restores the exact quantities
// the order deducted. The payment axis is never touched here.
func (s *WorkflowService) TransitionStatus(ctx context.Context, actorID, merchantID int, orderID uint, target string) (*domain.Order, error) {
	tx, txCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	order, err := s.lockOwnedOrder(txCtx, tx, orderID, merchantID)
	if err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(target) {
		return nil, apperrors.NewInvalidTransitionError(order.Status, target)
	}

	var completedAt *time.Time
	if target == domain.OrderStatusCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}

	if err := s.orderRepo.UpdateStatus(txCtx, tx, orderID, target, completedAt); err != nil {
		return nil, err
	}

	switch target {
	case domain.OrderStatusCompleted:
		if _, err := s.projector.Recompute(txCtx, tx, order.CustomerID); err != nil {
			return nil, err
		}
	case domain.OrderStatusCancelled:
		items, err := s.itemRepo.ListByOrderInTx(txCtx, tx, orderID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if _, err := s.ledger.Increase(txCtx, tx, actorID, merchantID, item.ProductID, item.Quantity, stockReasonOrderCancelled, &orderID); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit status transition", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.Uint("orderId", orderID),
		zap.String("from", order.Status),
		zap.String("to", target))

	order.Status = target
	order.CompletedAt = completedAt
	return order, nil
}

// RecordPayment appends to the payment journal and re-derives the payment
// status from the cumulative paid amount. Overpayment is change, not an error.
func (s *WorkflowService) RecordPayment(ctx context.Context, actorID, merchantID int, orderID uint, input dto.PaymentInput) (*dto.PaymentReceipt, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewInvalidAmountError(input.Amount)
	}

	method := input.Method
	if method == "" {
		method = domain.PaymentMethodCash
	}

	tx, txCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	order, err := s.lockOwnedOrder(txCtx, tx, orderID, merchantID)
	if err != nil {
		return nil, err
	}

	payment := domain.Payment{
		OrderID:   orderID,
		ActorID:   actorID,
		Amount:    input.Amount,
		Method:    method,
		Reference: input.Reference,
		Notes:     input.Notes,
		CreatedAt: time.Now().UTC(),
	}

	paymentID, err := s.paymentRepo.Insert(txCtx, tx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = paymentID

	order.ApplyPayment(input.Amount)

	if err := s.orderRepo.UpdatePayment(txCtx, tx, orderID, order.PaidAmount, order.ChangeAmount, order.PaymentStatus); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit payment", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Uint("orderId", orderID),
		zap.Float64("amount", input.Amount),
		zap.String("method", method),
		zap.String("paymentStatus", order.PaymentStatus))

	return &dto.PaymentReceipt{Payment: payment, Order: *order}, nil
}

func (s *WorkflowService) lockOwnedOrder(ctx context.Context, tx *sql.Tx, orderID uint, merchantID int) (*domain.Order, error) {
	order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if order.MerchantID != merchantID {
		return nil, apperrors.NewForbiddenError("order does not belong to this merchant")
	}

	return order, nil
}

package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"warung/internal/domain"
	apperrors "warung/internal/errors"
)

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, productID, merchantID int) (*domain.Product, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error)
	IncrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) error
	SetStock(ctx context.Context, tx *sql.Tx, productID, newStock int) error
}

type StockHistoryRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, entry domain.StockHistory) (uint, error)
}

// LedgerService is the only writer of product stock. Every mutation happens
// under a row lock inside the caller's transaction and appends exactly one
// history entry whose old/new values match the change.
type LedgerService struct {
	productRepo ProductRepository
	historyRepo StockHistoryRepository
	logger      *zap.Logger
}

func NewLedgerService(
	productRepo ProductRepository,
	historyRepo StockHistoryRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		productRepo: productRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Decrease removes quantity units of stock. Fails with InsufficientStock when
// the locked row holds fewer units than requested; stock is left untouched.
func (s *LedgerService) Decrease(
	ctx context.Context,
	tx *sql.Tx,
	actorID int,
	merchantID int,
	productID int,
	quantity int,
	reason string,
	orderID *uint,
) (*domain.StockHistory, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive")
	}

	product, err := s.productRepo.FindByIDForUpdate(ctx, tx, productID, merchantID)
	if err != nil {
		return nil, err
	}

	if !product.CanFulfill(quantity) {
		return nil, apperrors.NewInsufficientStockError(productID, quantity, product.Stock)
	}

	applied, err := s.productRepo.DecrementStock(ctx, tx, productID, quantity)
	if err != nil {
		return nil, err
	}
	if !applied {
		// The row is locked, so the guard can only fail if the check above
		// raced something outside this ledger. Treat it the same way.
		return nil, apperrors.NewInsufficientStockError(productID, quantity, product.Stock)
	}

	entry := domain.StockHistory{
		ProductID: productID,
		ActorID:   actorID,
		OrderID:   orderID,
		Type:      domain.StockChangeDecrease,
		Quantity:  quantity,
		OldStock:  product.Stock,
		NewStock:  product.Stock - quantity,
		Reason:    reason,
	}

	entryID, err := s.historyRepo.Insert(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID

	s.logger.Debug("stock decreased",
		zap.Int("productId", productID),
		zap.Int("quantity", quantity),
		zap.Int("newStock", entry.NewStock),
		zap.String("reason", reason))

	return &entry, nil
}

// Increase adds quantity units of stock. There is no upper bound; restocks and
// cancelled-order reversals both land here.
func (s *LedgerService) Increase(
	ctx context.Context,
	tx *sql.Tx,
	actorID int,
	merchantID int,
	productID int,
	quantity int,
	reason string,
	orderID *uint,
) (*domain.StockHistory, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive")
	}

	product, err := s.productRepo.FindByIDForUpdate(ctx, tx, productID, merchantID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.IncrementStock(ctx, tx, productID, quantity); err != nil {
		return nil, err
	}

	entry := domain.StockHistory{
		ProductID: productID,
		ActorID:   actorID,
		OrderID:   orderID,
		Type:      domain.StockChangeIncrease,
		Quantity:  quantity,
		OldStock:  product.Stock,
		NewStock:  product.Stock + quantity,
		Reason:    reason,
	}

	entryID, err := s.historyRepo.Insert(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID

	s.logger.Debug("stock increased",
		zap.Int("productId", productID),
		zap.Int("quantity", quantity),
		zap.Int("newStock", entry.NewStock),
		zap.String("reason", reason))

	return &entry, nil
}

// Adjust sets the stock to an absolute value, recording the delta as an
// adjustment entry. Used for inventory counts.
func (s *LedgerService) Adjust(
	ctx context.Context,
	tx *sql.Tx,
	actorID int,
	merchantID int,
	productID int,
	newStock int,
	reason string,
	notes *string,
) (*domain.StockHistory, error) {
	if newStock < 0 {
		return nil, apperrors.NewValidationError("stock cannot be negative")
	}

	product, err := s.productRepo.FindByIDForUpdate(ctx, tx, productID, merchantID)
	if err != nil {
		return nil, err
	}

	if newStock == product.Stock {
		return nil, apperrors.NewValidationError("stock is already at the requested value")
	}

	if err := s.productRepo.SetStock(ctx, tx, productID, newStock); err != nil {
		return nil, err
	}

	quantity := newStock - product.Stock
	if quantity < 0 {
		quantity = -quantity
	}

	entry := domain.StockHistory{
		ProductID: productID,
		ActorID:   actorID,
		Type:      domain.StockChangeAdjustment,
		Quantity:  quantity,
		OldStock:  product.Stock,
		NewStock:  newStock,
		Reason:    reason,
		Notes:     notes,
	}

	entryID, err := s.historyRepo.Insert(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID

	s.logger.Info("stock adjusted",
		zap.Int("productId", productID),
		zap.Int("oldStock", product.Stock),
		zap.Int("newStock", newStock),
		zap.String("reason", reason))

	return &entry, nil
}

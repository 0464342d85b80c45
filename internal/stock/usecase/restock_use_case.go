package usecase

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"warung/internal/commons"
	"warung/internal/domain"
	"warung/internal/dto"
	apperrors "warung/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type StockLedger interface {
	Increase(ctx context.Context, tx *sql.Tx, actorID, merchantID, productID, quantity int, reason string, orderID *uint) (*domain.StockHistory, error)
	Adjust(ctx context.Context, tx *sql.Tx, actorID, merchantID, productID, newStock int, reason string, notes *string) (*domain.StockHistory, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, productID, merchantID int) (*domain.Product, error)
}

type StockHistoryRepository interface {
	ListByProduct(ctx context.Context, productID, limit int) ([]domain.StockHistory, error)
}

const defaultHistoryLimit = 50

// RestockUseCase drives stock mutations that happen outside any order:
// restocks and inventory-count adjustments.
type RestockUseCase struct {
	db               TransactionManager
	ledger           StockLedger
	productRepo      ProductRepository
	historyRepo      StockHistoryRepository
	logger           *zap.Logger
	txTimeout        time.Duration
	maxRetryAttempts int
}

func NewRestockUseCase(
	db TransactionManager,
	ledger StockLedger,
	productRepo ProductRepository,
	historyRepo StockHistoryRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
	maxRetryAttempts int,
) *RestockUseCase {
	return &RestockUseCase{
		db:               db,
		ledger:           ledger,
		productRepo:      productRepo,
		historyRepo:      historyRepo,
		logger:           logger,
		txTimeout:        txTimeout,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *RestockUseCase) AdjustStock(ctx context.Context, actorID, merchantID, productID int, input dto.StockAdjustmentInput) (*domain.StockHistory, error) {
	if input.Type != domain.StockChangeIncrease && input.Type != domain.StockChangeAdjustment {
		return nil, apperrors.NewValidationError("unknown stock change type", apperrors.ValidationDetail{
			Field:   "type",
			Message: "type must be increase or adjustment",
		})
	}

	reason := input.Reason
	if reason == "" {
		reason = "restock"
	}

	var entry *domain.StockHistory
	err := commons.RetryOnDeadlock(uc.logger, uc.maxRetryAttempts, func() error {
		var opErr error
		entry, opErr = uc.applyInTx(ctx, actorID, merchantID, productID, input, reason)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *RestockUseCase) applyInTx(ctx context.Context, actorID, merchantID, productID int, input dto.StockAdjustmentInput, reason string) (*domain.StockHistory, error) {
	txCtx, cancel := context.WithTimeout(ctx, uc.txTimeout)
	defer cancel()

	tx, err := uc.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		uc.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	var entry *domain.StockHistory
	switch input.Type {
	case domain.StockChangeIncrease:
		entry, err = uc.ledger.Increase(txCtx, tx, actorID, merchantID, productID, input.Quantity, reason, nil)
	case domain.StockChangeAdjustment:
		entry, err = uc.ledger.Adjust(txCtx, tx, actorID, merchantID, productID, input.Quantity, reason, input.Notes)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		uc.logger.Error("failed to commit stock change", zap.Int("productId", productID), zap.Error(err))
		return nil, err
	}

	return entry, nil
}

// ProductHistory lists the most recent ledger entries for an owned product.
func (uc *RestockUseCase) ProductHistory(ctx context.Context, merchantID, productID, limit int) ([]domain.StockHistory, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultHistoryLimit
	}

	// Ownership check; also surfaces NotFound for foreign products.
	if _, err := uc.productRepo.FindByID(ctx, productID, merchantID); err != nil {
		return nil, err
	}

	return uc.historyRepo.ListByProduct(ctx, productID, limit)
}

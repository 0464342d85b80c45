package stock

import (
	"database/sql"

	"go.uber.org/zap"

	"warung/internal/config"
	"warung/internal/stock/controller"
	"warung/internal/stock/repository"
	"warung/internal/stock/service"
	"warung/internal/stock/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.StockController {
	productRepo := repository.NewMySQLProductRepository(db)
	historyRepo := repository.NewMySQLStockHistoryRepository(db)

	ledger := service.NewLedgerService(productRepo, historyRepo, logger)

	uc := usecase.NewRestockUseCase(
		db,
		ledger,
		productRepo,
		historyRepo,
		logger,
		cfg.Order.TxTimeout,
		cfg.Order.MaxRetryAttempts,
	)

	return controller.NewStockController(uc, logger)
}

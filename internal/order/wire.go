package order

import (
	"database/sql"

	"go.uber.org/zap"

	"warung/internal/config"
	customerrepo "warung/internal/customer/repository"
	customerservice "warung/internal/customer/service"
	"warung/internal/order/controller"
	orderrepo "warung/internal/order/repository"
	"warung/internal/order/service"
	"warung/internal/order/usecase"
	stockrepo "warung/internal/stock/repository"
	stockservice "warung/internal/stock/service"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	paymentRepo := orderrepo.NewMySQLPaymentRepository(db)
	productRepo := stockrepo.NewMySQLProductRepository(db)
	historyRepo := stockrepo.NewMySQLStockHistoryRepository(db)
	customerRepo := customerrepo.NewMySQLCustomerRepository(db)

	ledger := stockservice.NewLedgerService(productRepo, historyRepo, logger)
	projector := customerservice.NewStatsProjector(orderRepo, customerRepo, logger)

	workflow := service.NewWorkflowService(
		db,
		orderRepo,
		itemRepo,
		paymentRepo,
		productRepo,
		ledger,
		projector,
		logger,
		cfg.Order.TxTimeout,
	)

	uc := usecase.NewWorkflowUseCase(
		workflow,
		customerRepo,
		orderRepo,
		itemRepo,
		paymentRepo,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return controller.NewOrderController(uc, logger)
}

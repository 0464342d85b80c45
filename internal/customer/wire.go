package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"warung/internal/customer/controller"
	"warung/internal/customer/repository"
	"warung/internal/customer/usecase"
)

// NewModule wires the customer module and returns its HTTP controller.
func NewModule(db *sql.DB, logger *zap.Logger) *controller.CustomerController {
	customerRepo := repository.NewMySQLCustomerRepository(db)
	customerUseCase := usecase.NewCustomerUseCase(customerRepo, logger)
	return controller.NewCustomerController(customerUseCase, logger)
}

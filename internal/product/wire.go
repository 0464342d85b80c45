package product

import (
	"database/sql"

	"go.uber.org/zap"

	stockrepo "warung/internal/stock/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := stockrepo.NewMySQLProductRepository(db)
	svc := NewService(repo)
	uc := NewUseCase(svc)
	return NewController(uc, logger)
}

package usecase

import (
	"context"

	"go.uber.org/zap"

	"warung/internal/domain"
)

type CustomerRepository interface {
	Insert(ctx context.Context, customer domain.Customer) (int, error)
	FindByID(ctx context.Context, customerID, merchantID int) (*domain.Customer, error)
}

type CreateCustomerInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

type CustomerUseCase struct {
	repo   CustomerRepository
	logger *zap.Logger
}

func NewCustomerUseCase(repo CustomerRepository, logger *zap.Logger) *CustomerUseCase {
	return &CustomerUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, merchantID int, input CreateCustomerInput) (*domain.Customer, error) {
	customer := domain.Customer{
		MerchantID: merchantID,
		Code:       domain.NewCustomerCode(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		IsActive:   true,
	}

	id, err := uc.repo.Insert(ctx, customer)
	if err != nil {
		return nil, err
	}
	customer.ID = id

	uc.logger.Info("customer created",
		zap.Int("customerId", id),
		zap.String("code", customer.Code))

	return &customer, nil
}

func (uc *CustomerUseCase) GetCustomer(ctx context.Context, merchantID, customerID int) (*domain.Customer, error) {
	return uc.repo.FindByID(ctx, customerID, merchantID)
}

package uow

import (
	"context"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
)

type Repos struct {
	Customers customer.Repository
	Loans     loan.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the customer row first, then pass it in. Loan
	// creation and the debt increment ride the same transaction so both
	// commit or neither does.
	WithinCustomerTx(ctx context.Context, customerID string, fn func(r Repos, c *customer.Customer) error) error
}

package loanmock

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "credit-approval/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies loan.Repository. Unfilled
// lookups behave like an empty store.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn              func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByCustomerIDFn         func(ctx context.Context, customerID string) ([]domain.Loan, error)
	ListApprovedByCustomerIDFn func(ctx context.Context, customerID string) ([]domain.Loan, error)
	SumApprovedInstallmentsFn  func(ctx context.Context, customerID string) (decimal.Decimal, error)
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Loan, error) {
	if m.ListByCustomerIDFn != nil {
		return m.ListByCustomerIDFn(ctx, customerID)
	}
	return nil, nil
}

func (m *Repo) ListApprovedByCustomerID(ctx context.Context, customerID string) ([]domain.Loan, error) {
	if m.ListApprovedByCustomerIDFn != nil {
		return m.ListApprovedByCustomerIDFn(ctx, customerID)
	}
	return nil, nil
}

func (m *Repo) SumApprovedInstallments(ctx context.Context, customerID string) (decimal.Decimal, error) {
	if m.SumApprovedInstallmentsFn != nil {
		return m.SumApprovedInstallmentsFn(ctx, customerID)
	}
	return decimal.Zero, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

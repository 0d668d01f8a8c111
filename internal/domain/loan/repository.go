package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// ListByCustomerID returns the full history, every status included.
	ListByCustomerID(ctx context.Context, customerID string) ([]Loan, error)
	ListApprovedByCustomerID(ctx context.Context, customerID string) ([]Loan, error)
	// SumApprovedInstallments aggregates the monthly EMIs of currently
	// approved loans; zero when there are none.
	SumApprovedInstallments(ctx context.Context, customerID string) (decimal.Decimal, error)
	Save(ctx context.Context, l *Loan) error
}

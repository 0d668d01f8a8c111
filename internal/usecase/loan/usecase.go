package loan

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"credit-approval/internal/credit"
	customerDomain "credit-approval/internal/domain/customer"
	loanDomain "credit-approval/internal/domain/loan"
	"credit-approval/internal/domain/uow"
	"credit-approval/pkg/id"
)

// Usecase drives both the read-only eligibility check and the loan-creation
// path through the one shared engine; neither handler owns any scoring logic.
type Usecase struct {
	customers customerDomain.Repository
	loans     loanDomain.Repository
	uow       uow.UnitOfWork
	engine    *credit.Engine
}

func NewUsecase(customers customerDomain.Repository, loans loanDomain.Repository, tx uow.UnitOfWork, engine *credit.Engine) *Usecase {
	return &Usecase{customers: customers, loans: loans, uow: tx, engine: engine}
}

// CheckEligibility evaluates requested terms without touching stored state.
func (u *Usecase) CheckEligibility(ctx context.Context, in EligibilityInput) (*EligibilityDTO, error) {
	c, err := u.customers.GetByCustomerID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerDomain.ErrNotFound
		}
		return nil, err
	}
	history, err := u.loans.ListByCustomerID(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}

	v, err := u.engine.Evaluate(snapshotOf(c, history), in.LoanAmount, in.InterestRate, in.Tenure, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	dto := &EligibilityDTO{
		CustomerID:            c.CustomerID,
		Approval:              v.Approved,
		InterestRate:          in.InterestRate,
		CorrectedInterestRate: v.CorrectedRate,
		Tenure:                in.Tenure,
	}
	if v.Installment != nil {
		dto.MonthlyInstallment = *v.Installment
	} else {
		dto.MonthlyInstallment = decimal.Zero
	}
	return dto, nil
}

// Create runs the same evaluation as CheckEligibility, but inside a single
// transaction with the customer row locked: the loan insert and the debt
// increment commit together or not at all. A business rejection is a normal
// DTO with LoanApproved=false, never an error.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*CreateDTO, error) {
	var dto *CreateDTO
	err := u.uow.WithinCustomerTx(ctx, in.CustomerID, func(r uow.Repos, c *customerDomain.Customer) error {
		history, err := r.Loans.ListByCustomerID(ctx, c.CustomerID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		v, err := u.engine.Evaluate(snapshotOf(c, history), in.LoanAmount, in.InterestRate, in.Tenure, now)
		if err != nil {
			return err
		}

		if !v.Approved {
			dto = &CreateDTO{CustomerID: c.CustomerID, Message: v.Reason}
			return nil
		}

		rate := in.InterestRate
		if v.CorrectedRate != nil {
			rate = *v.CorrectedRate
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		l := &loanDomain.Loan{
			LoanID:             id.NewID32(),
			CustomerID:         c.CustomerID,
			LoanAmount:         in.LoanAmount,
			Tenure:             in.Tenure,
			InterestRate:       rate,
			MonthlyInstallment: *v.Installment,
			StartDate:          start,
			EndDate:            start.AddDate(0, in.Tenure, 0),
			Status:             loanDomain.StatusApproved,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		c.CurrentDebt = c.CurrentDebt.Add(in.LoanAmount)
		if err := r.Customers.Save(ctx, c); err != nil {
			return err
		}

		dto = &CreateDTO{
			LoanID:             &l.LoanID,
			CustomerID:         c.CustomerID,
			LoanApproved:       true,
			MonthlyInstallment: v.Installment,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDetailDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	c, err := u.customers.GetByCustomerID(ctx, l.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerDomain.ErrNotFound
		}
		return nil, err
	}
	return &LoanDetailDTO{
		LoanID:             l.LoanID,
		LoanAmount:         l.LoanAmount,
		InterestRate:       l.InterestRate,
		Tenure:             l.Tenure,
		MonthlyInstallment: l.MonthlyInstallment,
		Customer: LoanCustomerDTO{
			CustomerID:  c.CustomerID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			Age:         c.Age,
			PhoneNumber: c.PhoneNumber,
		},
	}, nil
}

// ListByCustomer returns the customer's currently approved loans. An empty
// list is a valid answer, not an error.
func (u *Usecase) ListByCustomer(ctx context.Context, customerID string) (*CustomerLoansDTO, error) {
	c, err := u.customers.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerDomain.ErrNotFound
		}
		return nil, err
	}
	active, err := u.loans.ListApprovedByCustomerID(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}
	out := &CustomerLoansDTO{
		CustomerID: c.CustomerID,
		TotalLoans: len(active),
		Loans:      make([]LoanSummaryDTO, 0, len(active)),
	}
	for _, l := range active {
		out.Loans = append(out.Loans, LoanSummaryDTO{
			LoanID:             l.LoanID,
			LoanAmount:         l.LoanAmount,
			InterestRate:       l.InterestRate,
			MonthlyInstallment: l.MonthlyInstallment,
			RepaymentsLeft:     l.Tenure - l.EMIsPaidOnTime,
		})
	}
	return out, nil
}

// snapshotOf builds the engine's read-only view. Every loan goes in
// regardless of status; the Approved flag is what the affordability check
// filters on.
func snapshotOf(c *customerDomain.Customer, history []loanDomain.Loan) credit.Snapshot {
	snap := credit.Snapshot{
		MonthlySalary: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		CurrentDebt:   c.CurrentDebt,
		Loans:         make([]credit.LoanRecord, 0, len(history)),
	}
	for _, l := range history {
		snap.Loans = append(snap.Loans, credit.LoanRecord{
			Principal:          l.LoanAmount,
			InterestRate:       l.InterestRate,
			TenureMonths:       l.Tenure,
			EMIsPaidOnTime:     l.EMIsPaidOnTime,
			MonthlyInstallment: l.MonthlyInstallment,
			StartDate:          l.StartDate,
			Approved:           l.Status == loanDomain.StatusApproved,
		})
	}
	return snap
}

package loan

import "github.com/shopspring/decimal"

type EligibilityInput struct {
	CustomerID   string
	LoanAmount   decimal.Decimal
	InterestRate decimal.Decimal
	Tenure       int
}

// CreateInput carries the same requested terms as an eligibility check; the
// creation path re-evaluates them inside the transaction.
type CreateInput = EligibilityInput

type EligibilityDTO struct {
	CustomerID            string           `json:"customer_id"`
	Approval              bool             `json:"approval"`
	InterestRate          decimal.Decimal  `json:"interest_rate"`
	CorrectedInterestRate *decimal.Decimal `json:"corrected_interest_rate"`
	Tenure                int              `json:"tenure"`
	MonthlyInstallment    decimal.Decimal  `json:"monthly_installment"`
}

type CreateDTO struct {
	LoanID             *string          `json:"loan_id"`
	CustomerID         string           `json:"customer_id"`
	LoanApproved       bool             `json:"loan_approved"`
	Message            string           `json:"message,omitempty"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment"`
}

type LoanCustomerDTO struct {
	CustomerID  string `json:"customer_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

type LoanDetailDTO struct {
	LoanID             string          `json:"loan_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	Tenure             int             `json:"tenure"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	Customer           LoanCustomerDTO `json:"customer"`
}

type LoanSummaryDTO struct {
	LoanID             string          `json:"loan_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	RepaymentsLeft     int             `json:"repayments_left"`
}

type CustomerLoansDTO struct {
	CustomerID string           `json:"customer_id"`
	TotalLoans int              `json:"total_loans"`
	Loans      []LoanSummaryDTO `json:"loans"`
}

package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("loan not found")

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusClosed   Status = "closed"
)

type Loan struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID string `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	// Public customer id (32-char lowercase hex), not the numeric PK.
	CustomerID         string          `gorm:"column:customer_id;type:char(32);not null;index:idx_loans_customer" json:"customer_id"`
	LoanAmount         decimal.Decimal `gorm:"column:loan_amount;type:decimal(12,2);not null" json:"loan_amount"`
	Tenure             int             `gorm:"column:tenure;not null" json:"tenure"`
	InterestRate       decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	// Always derived via credit.Installment before persisting, never client-supplied.
	MonthlyInstallment decimal.Decimal `gorm:"column:monthly_installment;type:decimal(12,2);not null" json:"monthly_installment"`
	EMIsPaidOnTime     int             `gorm:"column:emis_paid_on_time;not null;default:0" json:"emis_paid_on_time"`
	StartDate          time.Time       `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate            time.Time       `gorm:"column:end_date;type:date;not null" json:"end_date"`
	Status             Status          `gorm:"column:status;type:enum('pending','approved','rejected','closed');default:'pending'" json:"status"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

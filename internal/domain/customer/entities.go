package customer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("customer not found")
	ErrPhoneTaken = errors.New("a customer with this phone number already exists")
)

type Customer struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	CustomerID string `gorm:"column:customer_id;type:char(32);not null;uniqueIndex:ux_customers_customer_id_active" json:"customer_id"`
	FirstName  string `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName   string `gorm:"column:last_name;size:100;not null" json:"last_name"`
	// Digits-only canonical form, unique across customers.
	PhoneNumber   string          `gorm:"column:phone_number;size:15;not null;uniqueIndex:ux_customers_phone_active" json:"phone_number"`
	MonthlySalary decimal.Decimal `gorm:"column:monthly_salary;type:decimal(12,2);not null" json:"monthly_salary"`
	ApprovedLimit decimal.Decimal `gorm:"column:approved_limit;type:decimal(12,2);not null" json:"approved_limit"`
	// Grows by the principal on every approved loan; never goes negative.
	CurrentDebt decimal.Decimal `gorm:"column:current_debt;type:decimal(12,2);not null;default:0" json:"current_debt"`
	Age         int             `gorm:"column:age;not null" json:"age"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Customer) TableName() string { return "customers" }

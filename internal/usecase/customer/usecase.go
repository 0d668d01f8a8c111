package customer

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"credit-approval/internal/credit"
	"credit-approval/internal/domain/customer"
	"credit-approval/pkg/id"
)

var ErrInvalidPhone = errors.New("phone number must contain at least one digit")

type Usecase struct{ repo customer.Repository }

func NewUsecase(r customer.Repository) *Usecase { return &Usecase{repo: r} }

// Register creates a customer with the approved limit derived up-front
// (36x income rounded to the nearest 100,000). Derivation happens here, before
// the record is persisted; the store never back-fills it.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*CustomerDTO, error) {
	phone := canonicalPhone(in.PhoneNumber)
	if phone == "" {
		return nil, ErrInvalidPhone
	}

	_, err := u.repo.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		return nil, customer.ErrPhoneTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	c := &customer.Customer{
		CustomerID:    id.NewID32(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		PhoneNumber:   phone,
		MonthlySalary: in.MonthlyIncome.Round(2),
		ApprovedLimit: credit.RegistrationLimit(in.MonthlyIncome),
		CurrentDebt:   decimal.Zero,
		Age:           in.Age,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, customerID string) (*CustomerDTO, error) {
	c, err := u.repo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}

func toDTO(c *customer.Customer) *CustomerDTO {
	return &CustomerDTO{
		CustomerID:    c.CustomerID,
		Name:          strings.TrimSpace(c.FirstName + " " + c.LastName),
		Age:           c.Age,
		MonthlyIncome: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		PhoneNumber:   c.PhoneNumber,
	}
}

// canonicalPhone strips everything but digits.
func canonicalPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

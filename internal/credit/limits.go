package credit

import "github.com/shopspring/decimal"

var (
	limitMultiplier   = decimal.NewFromInt(36)
	limitDenomination = decimal.NewFromInt(100_000)
)

// DefaultLimit is the raw 36x-salary credit limit. The bulk importer falls
// back to it when a historical record carries no approved limit of its own.
func DefaultLimit(monthlySalary decimal.Decimal) decimal.Decimal {
	return monthlySalary.Mul(limitMultiplier)
}

// RegistrationLimit derives the approved credit limit for a newly registered
// customer: 36x monthly income, rounded to the nearest 100,000.
func RegistrationLimit(monthlyIncome decimal.Decimal) decimal.Decimal {
	return monthlyIncome.Mul(limitMultiplier).
		Div(limitDenomination).Round(0).
		Mul(limitDenomination)
}

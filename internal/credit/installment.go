package credit

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidTenure is a caller bug, not a business rejection; tenure must be
// validated before calling into this package.
var ErrInvalidTenure = errors.New("tenure must be at least 1 month")

var (
	one               = decimal.NewFromInt(1)
	annualRateDivisor = decimal.NewFromInt(1200)
)

// Installment computes the fixed monthly payment (EMI) for an amortizing loan
// from the principal, the annual interest rate in percent and the tenure in
// months, rounded to 2 decimal places.
//
// All arithmetic is fixed-point decimal so results are reproducible: the
// monthly rate is principal-independent (annualRatePercent / 1200) and a
// zero-rate loan degenerates to principal / tenure.
func Installment(principal, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths < 1 {
		return decimal.Zero, ErrInvalidTenure
	}
	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(n).Round(2), nil
	}

	// P * r * (1+r)^n / ((1+r)^n - 1)
	r := annualRatePercent.Div(annualRateDivisor)
	pow := one.Add(r).Pow(n)
	num := principal.Mul(r).Mul(pow)
	den := pow.Sub(one)
	return num.Div(den).Round(2), nil
}

package credit

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanRecord is a read-only view of one historical loan. The scorer uses every
// record regardless of status; only the affordability check in the engine cares
// whether a loan is currently approved.
type LoanRecord struct {
	Principal          decimal.Decimal
	InterestRate       decimal.Decimal
	TenureMonths       int
	EMIsPaidOnTime     int
	MonthlyInstallment decimal.Decimal
	StartDate          time.Time
	Approved           bool
}

// Snapshot is the immutable customer view the engine evaluates. Callers build
// it from stored state; nothing in this package mutates it or the store.
type Snapshot struct {
	MonthlySalary decimal.Decimal
	ApprovedLimit decimal.Decimal
	CurrentDebt   decimal.Decimal
	Loans         []LoanRecord
}

var (
	neutralPayment = decimal.RequireFromString("17.5")
	weightPayment  = decimal.NewFromInt(35)
	weightRecency  = decimal.NewFromInt(15)
	four           = decimal.NewFromInt(4)
	twelve         = decimal.NewFromInt(12)
	hundred        = decimal.NewFromInt(100)
)

// volume-vs-annual-salary bands, highest ratio bound first match wins
var volumeBands = []struct {
	maxRatio decimal.Decimal
	score    decimal.Decimal
}{
	{decimal.NewFromInt(3), decimal.NewFromInt(35)},
	{decimal.NewFromInt(5), decimal.NewFromInt(25)},
	{decimal.NewFromInt(8), decimal.NewFromInt(15)},
}

var volumeWorst = decimal.NewFromInt(5)

// Score rates a customer's credit behavior on a 0-100 scale.
//
// A customer whose current debt exceeds the approved limit scores 0 outright.
// A customer with no loan history scores a neutral 50. Otherwise four weighted
// components are summed: payment reliability (35), loan count (15), activity
// since January 1 of now's year (15) and historical volume vs annual salary
// (35). The sum is clamped to [0, 100] and rounded to the nearest integer.
func Score(snap Snapshot, now time.Time) int {
	if snap.CurrentDebt.GreaterThan(snap.ApprovedLimit) {
		return 0
	}
	if len(snap.Loans) == 0 {
		return 50
	}

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	var (
		totalTenure int
		paidOnTime  int
		thisYear    int
		totalAmount = decimal.Zero
	)
	for _, l := range snap.Loans {
		totalTenure += l.TenureMonths
		paidOnTime += l.EMIsPaidOnTime
		if !l.StartDate.Before(yearStart) {
			thisYear++
		}
		totalAmount = totalAmount.Add(l.Principal)
	}

	// 1. payment reliability
	payment := neutralPayment
	if totalTenure > 0 {
		payment = decimal.NewFromInt(int64(paidOnTime)).
			Div(decimal.NewFromInt(int64(totalTenure))).
			Mul(weightPayment)
	}

	// 2. depth of history, capped at 3 loans
	countScore := decimal.NewFromInt(int64(min(len(snap.Loans)*5, 15)))

	// 3. recency concentration: 4+ loans started this year zeroes the component
	recentRatio := decimal.NewFromInt(int64(thisYear)).Div(four)
	if recentRatio.GreaterThan(one) {
		recentRatio = one
	}
	recency := weightRecency.Mul(one.Sub(recentRatio))

	// 4. volume vs annual salary; zero salary means an unbounded ratio
	volume := volumeWorst
	annual := snap.MonthlySalary.Mul(twelve)
	if annual.IsPositive() {
		ratio := totalAmount.Div(annual)
		for _, b := range volumeBands {
			if ratio.LessThanOrEqual(b.maxRatio) {
				volume = b.score
				break
			}
		}
	}

	total := payment.Add(countScore).Add(recency).Add(volume)
	if total.IsNegative() {
		total = decimal.Zero
	} else if total.GreaterThan(hundred) {
		total = hundred
	}
	return int(total.Round(0).IntPart())
}

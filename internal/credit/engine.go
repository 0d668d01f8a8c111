package credit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rejection reasons surfaced to callers. Rejections are data, never errors.
const (
	ReasonLowScore  = "credit score too low, loan cannot be approved"
	ReasonEMIBurden = "total EMIs would exceed 50% of monthly salary"
	ReasonRateMid   = "interest rate must be at least 12% for credit score between 31-50"
	ReasonRateLow   = "interest rate must be at least 16% for credit score between 11-30"
)

var half = decimal.RequireFromString("0.5")

// Verdict is the outcome of an eligibility evaluation. CorrectedRate is set
// only when the requested rate fell below the score-band floor; Installment is
// populated whenever an EMI was computed, including on most rejections, so
// callers can display it.
type Verdict struct {
	Approved      bool
	Reason        string
	CorrectedRate *decimal.Decimal
	Installment   *decimal.Decimal
}

// Engine is the credit-decision core. It is stateless and safe for concurrent
// use; both the eligibility endpoint and the loan-creation flow share one
// instance.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Evaluate turns a customer snapshot and requested terms into a Verdict.
//
// The order of checks is load-bearing: the score gate first, then the
// corrected-rate computation, then the EMI affordability check, and finally a
// second gate on the ORIGINAL requested rate against the band floor. The last
// two both reject requests the corrected rate alone would have repaired;
// collapsing them changes observable outcomes for borderline requests, so they
// stay independent.
//
// The only error return is ErrInvalidTenure, a caller bug. Business
// rejections come back as Verdict{Approved: false}.
func (e *Engine) Evaluate(snap Snapshot, principal, requestedRate decimal.Decimal, tenureMonths int, now time.Time) (Verdict, error) {
	if tenureMonths < 1 {
		return Verdict{}, ErrInvalidTenure
	}

	score := Score(snap, now)
	floor, eligible := FloorRate(score)
	if !eligible {
		return Verdict{Reason: ReasonLowScore}, nil
	}

	var corrected *decimal.Decimal
	effective := requestedRate
	if requestedRate.LessThan(floor) {
		f := floor
		corrected = &f
		effective = floor
	}

	installment, err := Installment(principal, effective, tenureMonths)
	if err != nil {
		return Verdict{}, err
	}

	// Existing obligations: approved loans only, unlike the scorer which reads
	// the whole history.
	current := decimal.Zero
	for _, l := range snap.Loans {
		if l.Approved {
			current = current.Add(l.MonthlyInstallment)
		}
	}
	if current.Add(installment).GreaterThan(snap.MonthlySalary.Mul(half)) {
		return Verdict{
			Reason:        ReasonEMIBurden,
			CorrectedRate: corrected,
			Installment:   &installment,
		}, nil
	}

	// Re-check the requested (uncorrected) rate against the band floor.
	switch {
	case score > 50:
		// no floor
	case score > 30:
		if requestedRate.LessThan(floorMidBand) {
			f := floorMidBand
			return Verdict{Reason: ReasonRateMid, CorrectedRate: &f, Installment: &installment}, nil
		}
	default:
		if requestedRate.LessThan(floorLowBand) {
			f := floorLowBand
			return Verdict{Reason: ReasonRateLow, CorrectedRate: &f, Installment: &installment}, nil
		}
	}

	return Verdict{Approved: true, CorrectedRate: corrected, Installment: &installment}, nil
}

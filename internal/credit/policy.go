package credit

import "github.com/shopspring/decimal"

var (
	floorMidBand = decimal.NewFromInt(12)
	floorLowBand = decimal.NewFromInt(16)
)

// FloorRate maps a credit score to the minimum acceptable annual interest
// rate. The second return is false when the score disqualifies the customer
// from any loan at all (score <= 10). A score above 50 carries no floor.
func FloorRate(score int) (decimal.Decimal, bool) {
	switch {
	case score <= 10:
		return decimal.Zero, false
	case score <= 30:
		return floorLowBand, true
	case score <= 50:
		return floorMidBand, true
	default:
		return decimal.Zero, true
	}
}

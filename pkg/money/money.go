// Package money holds the settlement arithmetic for loan offers.
package money

import "github.com/shopspring/decimal"

// SettlementFee is the flat charge added to every settled loan.
var SettlementFee = decimal.RequireFromString("3.00")

var (
	percentMonths = decimal.NewFromInt(1200) // 100 (percent) * 12 (months)
)

// TotalDue calculates what the investor owes when an offer settles:
// principal + principal * (rate/100) * (months/12) + SettlementFee
// Result is rounded to 2 decimal places.
func TotalDue(principal, annualRatePercent decimal.Decimal, periodMonths int) decimal.Decimal {
	interest := principal.
		Mul(annualRatePercent).
		Mul(decimal.NewFromInt(int64(periodMonths))).
		Div(percentMonths)

	return principal.Add(interest).Add(SettlementFee).Round(2)
}

// Sufficient reports whether balance covers due. An exact match is enough.
func Sufficient(balance, due decimal.Decimal) bool {
	return balance.GreaterThanOrEqual(due)
}

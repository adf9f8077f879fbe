package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats an amount in the currency's display format, e.g. ₪1,234.56.
// Unknown currency codes fall back to a plain two-decimal number followed by the code.
func Money(amount float64, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return decimal.NewFromFloat(amount).StringFixed(2) + " " + currency
	}
	factor := decimal.New(1, int32(cur.Fraction))
	minor := decimal.NewFromFloat(amount).Mul(factor).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// Percent formats a rate as a percentage with two decimals.
func Percent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

// Number formats a plain value with the given number of decimals.
func Number(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

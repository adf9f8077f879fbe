package calculator

// DefaultTaxRate is the flat capital gains rate applied to real gains.
const DefaultTaxRate = 0.25

// ComputeTax returns the tax due on the real gain and the real gain itself.
// No tax is due on a zero or negative real gain.
func ComputeTax(currentValue, adjustedTotal, taxRate float64) (tax, realGain float64) {
	realGain = currentValue - adjustedTotal
	if realGain <= 0 {
		return 0, realGain
	}
	return realGain * taxRate, realGain
}

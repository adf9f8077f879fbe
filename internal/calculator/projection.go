package calculator

import (
	"fmt"

	"ReinvestAnalyzer/internal/model"
)

// MaxProjectionYears bounds the projection horizon.
const MaxProjectionYears = 1000

// Project returns the value of start for years 0..years under p.
// Index 0 is start net of the one-time transaction fee; each following year
// applies growth then commission.
func Project(start float64, p model.Profile, years int) (model.Series, error) {
	if years < 0 || years > MaxProjectionYears {
		return nil, fmt.Errorf("%w: years to project must be within [0, %d], got %d", ErrValidation, MaxProjectionYears, years)
	}
	series := make(model.Series, years+1)
	value := start * (1 - p.TransactionFee)
	series[0] = value
	for i := 1; i <= years; i++ {
		value *= p.Growth()
		series[i] = value
	}
	return series, nil
}

// combine adds two series of equal length element by element.
func combine(a, b model.Series) model.Series {
	out := make(model.Series, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

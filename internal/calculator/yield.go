package calculator

import (
	"fmt"
	"math"

	"ReinvestAnalyzer/internal/model"
)

// ComputeYields returns the overall yield of the holding and its annualized
// equivalent over the span of deposit years (last - first + 1).
func ComputeYields(ledger model.Ledger, currentValue float64) (overall, annual float64, err error) {
	first, last, ok := ledger.Span()
	if !ok {
		return 0, 0, fmt.Errorf("%w: deposit ledger is empty", ErrValidation)
	}
	total := ledger.Total()
	if total == 0 {
		return 0, 0, fmt.Errorf("%w: total deposited is zero", ErrDivisionByZero)
	}
	years := float64(last - first + 1)

	overall = (currentValue - total) / total
	annual = math.Pow(1+overall, 1/years) - 1
	return overall, annual, nil
}

package calculator

import "ReinvestAnalyzer/internal/model"

// AdjustForInflation expresses every deposit in latest-year money:
// amount * latest / cpi(year). Years outside the table are not adjusted.
func (e *Engine) AdjustForInflation(ledger model.Ledger) map[int]float64 {
	latest := e.CPI.Latest()
	adjusted := make(map[int]float64, len(ledger))
	for year, amount := range ledger {
		adjusted[year] = amount * (latest / e.CPI.At(year))
	}
	return adjusted
}

// InflationTrace returns the per-year adjustment lines in ascending year order.
func (e *Engine) InflationTrace(ledger model.Ledger) []model.AdjustedDeposit {
	latest := e.CPI.Latest()
	trace := make([]model.AdjustedDeposit, 0, len(ledger))
	for _, year := range ledger.Years() {
		amount := ledger[year]
		cpi := e.CPI.At(year)
		trace = append(trace, model.AdjustedDeposit{
			Year:     year,
			Amount:   amount,
			CPI:      cpi,
			Adjusted: amount * (latest / cpi),
		})
	}
	return trace
}

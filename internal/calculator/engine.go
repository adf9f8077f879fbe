package calculator

import (
	"fmt"
	"math"

	"ReinvestAnalyzer/internal/model"
)

// Engine computes tax, projections and break-even for a deposit ledger.
// It holds only read-only configuration and is safe for concurrent use.
type Engine struct {
	CPI     *CpiIndex
	TaxRate float64
}

// NewEngine creates an Engine over a CPI index and a flat tax rate.
func NewEngine(cpi *CpiIndex, taxRate float64) (*Engine, error) {
	if cpi == nil {
		return nil, fmt.Errorf("%w: CPI index is required", ErrConfiguration)
	}
	if math.IsNaN(taxRate) || taxRate < 0 || taxRate > 1 {
		return nil, fmt.Errorf("%w: tax rate must be within [0, 1], got %g", ErrConfiguration, taxRate)
	}
	return &Engine{CPI: cpi, TaxRate: taxRate}, nil
}

// Analyze runs the whole computation for one ledger and scenario.
// The recommendation is left empty for the strategy package to fill.
func (e *Engine) Analyze(ledger model.Ledger, sc model.Scenario) (*model.AnalysisResult, error) {
	if err := ValidateScenario(sc); err != nil {
		return nil, err
	}
	share := sc.ReinvestShare
	if share == 0 {
		share = 1
	}

	overall, annual, err := ComputeYields(ledger, sc.CurrentValue)
	if err != nil {
		return nil, fmt.Errorf("compute yields: %w", err)
	}
	currentYield := annual
	if sc.YieldOverride != nil {
		currentYield = *sc.YieldOverride
	}

	trace := e.InflationTrace(ledger)
	adjustedTotal := 0.0
	for _, a := range trace {
		adjustedTotal += a.Adjusted
	}
	tax, realGain := ComputeTax(sc.CurrentValue, adjustedTotal, e.TaxRate)
	postTax := sc.CurrentValue - tax

	current := model.Profile{Yield: currentYield, Commission: sc.CurrentCommission}
	next := model.Profile{Yield: sc.NewYield, Commission: sc.NewCommission, TransactionFee: sc.NewTransactionFee}

	currentSeries, err := Project(sc.CurrentValue, current, sc.YearsToProject)
	if err != nil {
		return nil, fmt.Errorf("project current investment: %w", err)
	}

	moved := postTax * share
	kept := postTax - moved
	newSeries, err := Project(moved, next, sc.YearsToProject)
	if err != nil {
		return nil, fmt.Errorf("project new investment: %w", err)
	}
	if kept > 0 {
		keptSeries, err := Project(kept, current, sc.YearsToProject)
		if err != nil {
			return nil, fmt.Errorf("project kept investment: %w", err)
		}
		newSeries = combine(newSeries, keptSeries)
	}

	return &model.AnalysisResult{
		Current:        current,
		New:            next,
		ReinvestShare:  share,
		CurrentValue:   sc.CurrentValue,
		TotalDeposited: ledger.Total(),
		AdjustedTotal:  adjustedTotal,
		Adjustments:    trace,
		LatestCPI:      e.CPI.Latest(),
		OverallYield:   overall,
		AnnualYield:    annual,
		RealGain:       realGain,
		Tax:            tax,
		PostTax:        postTax,
		BreakEven:      findBreakEven(sc.CurrentValue, current, moved*(1-next.TransactionFee), kept, next),
		CurrentSeries:  currentSeries,
		NewSeries:      newSeries,
	}, nil
}

// ValidateScenario checks the scenario fields Analyze depends on.
func ValidateScenario(sc model.Scenario) error {
	if sc.CurrentValue < 0 {
		return fmt.Errorf("%w: current value must be non-negative, got %g", ErrValidation, sc.CurrentValue)
	}
	if sc.YearsToProject < 0 || sc.YearsToProject > MaxProjectionYears {
		return fmt.Errorf("%w: years to project must be within [0, %d], got %d", ErrValidation, MaxProjectionYears, sc.YearsToProject)
	}
	if sc.ReinvestShare < 0 || sc.ReinvestShare > 1 {
		return fmt.Errorf("%w: reinvest share must be within (0, 1], got %g", ErrValidation, sc.ReinvestShare)
	}
	return nil
}

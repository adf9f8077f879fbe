package strategy

import (
	"fmt"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/model"
)

const (
	moveMessage        = "Consider moving to the new investment mechanism."
	movePartialMessage = "Consider moving the specified portion to the new investment mechanism."
	stayMessage        = "Stay with the current investment mechanism."
)

// Evaluate compares the final values of both projections. Moving is
// recommended only when the new path ends strictly higher.
func Evaluate(res *model.AnalysisResult) model.Recommendation {
	rec := model.Recommendation{
		Action:    model.ActionStay,
		Message:   stayMessage,
		Advantage: res.NewFinal() - res.CurrentFinal(),
	}
	if res.NewFinal() > res.CurrentFinal() {
		rec.Action = model.ActionMove
		rec.Message = moveMessage
		if res.ReinvestShare < 1 {
			rec.Message = movePartialMessage
		}
	}

	horizon := res.CurrentSeries.Horizon()
	switch {
	case !res.BreakEven.Reached():
		rec.WarningMsg = fmt.Sprintf("The new investment does not overtake the current one within %d years.", calculator.MaxBreakEvenYears)
	case int(res.BreakEven) > horizon:
		rec.WarningMsg = fmt.Sprintf("Break-even in year %d falls after the %d-year projection.", res.BreakEven, horizon)
	}
	return rec
}

// Analyze runs the engine and attaches the recommendation.
func Analyze(e *calculator.Engine, ledger model.Ledger, sc model.Scenario) (*model.AnalysisResult, error) {
	res, err := e.Analyze(ledger, sc)
	if err != nil {
		return nil, err
	}
	res.Recommendation = Evaluate(res)
	return res, nil
}

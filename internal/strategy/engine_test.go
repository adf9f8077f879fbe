package strategy

import (
	"strings"
	"testing"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/model"
)

func result(current, next model.Series, be model.BreakEven) *model.AnalysisResult {
	return &model.AnalysisResult{
		CurrentSeries: current,
		NewSeries:     next,
		BreakEven:     be,
		ReinvestShare: 1,
	}
}

func TestEvaluate_Move(t *testing.T) {
	rec := Evaluate(result(model.Series{100, 105, 110}, model.Series{90, 104, 118}, 2))
	if rec.Action != model.ActionMove {
		t.Fatalf("expected MOVE, got %s", rec.Action)
	}
	if rec.Message != moveMessage {
		t.Errorf("unexpected message %q", rec.Message)
	}
	if rec.Advantage != 8 {
		t.Errorf("expected advantage 8, got %.2f", rec.Advantage)
	}
	if rec.WarningMsg != "" {
		t.Errorf("unexpected warning: %s", rec.WarningMsg)
	}
}

func TestEvaluate_PartialMove(t *testing.T) {
	res := result(model.Series{100, 110}, model.Series{95, 111}, 1)
	res.ReinvestShare = 0.4
	rec := Evaluate(res)
	if rec.Action != model.ActionMove || rec.Message != movePartialMessage {
		t.Errorf("expected partial move, got %s %q", rec.Action, rec.Message)
	}
}

func TestEvaluate_StayOnEqualFinals(t *testing.T) {
	rec := Evaluate(result(model.Series{100, 110}, model.Series{90, 110}, model.Never))
	if rec.Action != model.ActionStay {
		t.Fatalf("expected STAY on equal final values, got %s", rec.Action)
	}
	if rec.Message != stayMessage {
		t.Errorf("unexpected message %q", rec.Message)
	}
}

func TestEvaluate_Warnings(t *testing.T) {
	tests := []struct {
		name string
		be   model.BreakEven
		want string
	}{
		{"never", model.Never, "within 100 years"},
		{"after horizon", 7, "year 7 falls after the 2-year projection"},
		{"inside horizon", 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Evaluate(result(model.Series{100, 101, 102}, model.Series{90, 95, 100}, tt.be))
			if tt.want == "" {
				if rec.WarningMsg != "" {
					t.Errorf("unexpected warning %q", rec.WarningMsg)
				}
				return
			}
			if !strings.Contains(rec.WarningMsg, tt.want) {
				t.Errorf("warning %q does not contain %q", rec.WarningMsg, tt.want)
			}
		})
	}
}

func TestAnalyze_AttachesRecommendation(t *testing.T) {
	cpi, err := calculator.NewCpiIndex(map[int]float64{2020: 100, 2024: 110})
	if err != nil {
		t.Fatal(err)
	}
	e, err := calculator.NewEngine(cpi, calculator.DefaultTaxRate)
	if err != nil {
		t.Fatal(err)
	}
	override := 0.02
	sc := model.Scenario{
		CurrentValue:      15000,
		YieldOverride:     &override,
		CurrentCommission: 0.01,
		NewYield:          0.09,
		NewCommission:     0.001,
		YearsToProject:    30,
	}
	res, err := Analyze(e, model.Ledger{2020: 10000}, sc)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Recommendation.Action != model.ActionMove {
		t.Errorf("expected MOVE, got %s (current %.2f, new %.2f)", res.Recommendation.Action, res.CurrentFinal(), res.NewFinal())
	}

	if _, err := Analyze(e, model.Ledger{}, sc); err == nil {
		t.Error("expected error for empty ledger")
	}
}

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ReinvestAnalyzer/internal/model"
	"ReinvestAnalyzer/internal/recorder"
)

func sample() *model.AnalysisResult {
	return &model.AnalysisResult{
		Current:        model.Profile{Yield: 0.0699131939, Commission: 0.005},
		New:            model.Profile{Yield: 0.07, Commission: 0.002, TransactionFee: 0.001},
		ReinvestShare:  0.5,
		CurrentValue:   30000,
		TotalDeposited: 20000,
		AdjustedTotal:  22613.958539,
		Adjustments: []model.AdjustedDeposit{
			{Year: 2015, Amount: 10000, CPI: 100, Adjusted: 11380},
			{Year: 2020, Amount: 10000, CPI: 101.3, Adjusted: 11233.958539},
		},
		LatestCPI:      113.8,
		AnnualYield:    0.0699131939,
		RealGain:       7386.041461,
		Tax:            1846.510365,
		PostTax:        28153.489635,
		BreakEven:      model.Never,
		CurrentSeries:  model.Series{30000, 31918.5, 33959.4},
		NewSeries:      model.Series{28125.3, 30003.2, 32006.1},
		Recommendation: model.Recommendation{Action: model.ActionStay, Message: "Stay.", Advantage: -1953.3, WarningMsg: "No crossover."},
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234.567, "ILS", "1,234.57"},
		{0.005, "USD", "$0.01"},
		{-50, "EUR", "50.00"},
		{12.3, "XYZ", "12.30 XYZ"},
	}
	for _, tt := range tests {
		got := Money(tt.amount, tt.currency)
		if !strings.Contains(got, tt.want) {
			t.Errorf("Money(%v, %s) = %q, want it to contain %q", tt.amount, tt.currency, got, tt.want)
		}
	}
	if got := Money(1, "ILS"); !strings.Contains(got, "₪") {
		t.Errorf("expected shekel sign, got %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.0699131939); got != "6.99%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(-0.05); got != "-5.00%" {
		t.Errorf("Percent = %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sample(), "USD")
	for _, want := range []string{
		"| 2015 | $10,000.00 | 100.0 | $11,380.00 |",
		"| **Total** | $20,000.00 | 113.8 | $22,613.96 |",
		"- Annual yield: 6.99%",
		"- Tax owed: $1,846.51",
		"- Share moved: 50.00%",
		"| 2 | $33,959.40 | $32,006.10 |",
		"Break-even year: **Never**",
		"**STAY**: Stay.",
		"Difference after 2 years:",
		"> ⚠️ No crossover.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestLedgerAndHistoryMarkdown(t *testing.T) {
	md := LedgerMarkdown(model.Ledger{2020: 1000, 2018: 500}, "USD")
	if strings.Index(md, "2018") > strings.Index(md, "2020") || !strings.Contains(md, "$1,500.00") {
		t.Errorf("ledger markdown:\n%s", md)
	}
	if LedgerMarkdown(nil, "ILS") != "No deposits recorded.\n" {
		t.Error("empty ledger markdown")
	}

	hist := HistoryMarkdown([]recorder.AnalysisRecord{{
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 0, 0, time.Local),
		Years:     10,
		BreakEven: 21,
		Action:    model.ActionMove,
	}}, "ILS")
	if !strings.Contains(hist, "2025-01-02 03:04") || !strings.Contains(hist, "| 21 | MOVE |") {
		t.Errorf("history markdown:\n%s", hist)
	}
}

func TestCPIMarkdown(t *testing.T) {
	values := map[int]float64{2024: 113.8, 2025: 116}
	md := CPIMarkdown([]int{2024, 2025}, func(y int) float64 { return values[y] }, map[int]float64{2025: 116})
	if !strings.Contains(md, "| 2024 | 113.80 | config |") || !strings.Contains(md, "| 2025 | 116.00 | feed |") {
		t.Errorf("cpi markdown:\n%s", md)
	}
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nSome **bold** text.", "notty")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Errorf("rendered = %q", out)
	}
}

func TestRenderChart(t *testing.T) {
	png, err := RenderChart(sample(), "ILS", 800, 480)
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	path := filepath.Join(t.TempDir(), "chart.png")
	if err := WriteChart(path, sample(), "ILS", 800, 480); err != nil {
		t.Fatalf("WriteChart: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("chart file: %v", err)
	}
}

func TestRenderChart_SinglePoint(t *testing.T) {
	res := sample()
	res.CurrentSeries = model.Series{12000}
	res.NewSeries = model.Series{11988}
	png, err := RenderChart(res, "ILS", 800, 480)
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	res.CurrentSeries = model.Series{0}
	res.NewSeries = model.Series{0}
	if _, err := RenderChart(res, "ILS", 800, 480); err != nil {
		t.Fatalf("RenderChart with zero values: %v", err)
	}
}

func TestRenderChart_BadSeries(t *testing.T) {
	res := sample()
	res.CurrentSeries = nil
	res.NewSeries = nil
	if _, err := RenderChart(res, "ILS", 800, 480); err == nil {
		t.Fatal("expected error for empty series")
	}

	res = sample()
	res.NewSeries = res.NewSeries[:1]
	if _, err := RenderChart(res, "ILS", 800, 480); err == nil {
		t.Fatal("expected error for series of different lengths")
	}
}

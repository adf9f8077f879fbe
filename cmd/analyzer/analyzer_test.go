package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/config"
	"ReinvestAnalyzer/internal/ledger"
	"ReinvestAnalyzer/internal/model"
	"ReinvestAnalyzer/internal/prompt"
	"ReinvestAnalyzer/internal/recorder"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

func testApp(t *testing.T) *app {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := config.NewDefaultConfig()
	cfg.Ledger.StateFile = filepath.Join(t.TempDir(), "ledger.json")
	lm, err := ledger.NewManager(cfg.Ledger.StateFile, log)
	if err != nil {
		t.Fatal(err)
	}
	a := &app{cfg: cfg, log: log, ledger: lm, rec: recorder.NewNoopRecorder()}
	if err := a.loadCPI(); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestCollectScenario(t *testing.T) {
	a := testApp(t)
	in := strings.NewReader(strings.Join([]string{
		"2015", "10000",
		"2020", "10000",
		"done",
		"30000", "0.005",
		"y",
		"", // pause
		"0.07", "0.002", "0.001", "10",
		"",
	}, "\n") + "\n")

	sc, err := collectScenario(a, prompt.New(in, &bytes.Buffer{}))
	if err != nil {
		t.Fatalf("collectScenario: %v", err)
	}
	want := model.Scenario{
		CurrentValue:      30000,
		CurrentCommission: 0.005,
		NewYield:          0.07,
		NewCommission:     0.002,
		NewTransactionFee: 0.001,
		YearsToProject:    10,
		ReinvestShare:     1,
	}
	if sc.YieldOverride != nil {
		t.Errorf("unexpected yield override %v", *sc.YieldOverride)
	}
	sc.YieldOverride = nil
	if sc != want {
		t.Errorf("scenario = %+v, want %+v", sc, want)
	}
	if got := a.ledger.Scenario(); got.YearsToProject != 10 {
		t.Errorf("scenario not saved: %+v", got)
	}
	if got := a.ledger.Deposits(); len(got) != 2 {
		t.Errorf("deposits = %v", got)
	}

	engine, err := a.engine()
	if err != nil {
		t.Fatal(err)
	}
	res, err := engine.Analyze(a.ledger.Deposits(), sc)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.BreakEven != 21 {
		t.Errorf("break-even = %v, want 21", res.BreakEven)
	}
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		err  error
		want subcommands.ExitStatus
	}{
		{nil, subcommands.ExitSuccess},
		{fmt.Errorf("wrap: %w", calculator.ErrDivisionByZero), subcommands.ExitUsageError},
		{calculator.ErrConfiguration, subcommands.ExitFailure},
		{errors.New("disk full"), subcommands.ExitFailure},
	}
	stderr := os.Stderr
	os.Stderr, _ = os.Open(os.DevNull)
	defer func() { os.Stderr = stderr }()

	for _, tt := range tests {
		if got := exitStatus(tt.err); got != tt.want {
			t.Errorf("exitStatus(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestScenarioCmd_AppliesOnlySetFlags(t *testing.T) {
	c := &scenarioCmd{}
	f := flag.NewFlagSet("scenario", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-new-yield", "0.09", "-years", "25", "-yield", "0.04"}); err != nil {
		t.Fatal(err)
	}

	sc := model.Scenario{CurrentValue: 1000, NewYield: 0.05, YearsToProject: 10}
	f.Visit(func(fl *flag.Flag) { c.apply(fl.Name, &sc) })

	if sc.CurrentValue != 1000 || sc.NewYield != 0.09 || sc.YearsToProject != 25 {
		t.Errorf("scenario = %+v", sc)
	}
	if sc.YieldOverride == nil || *sc.YieldOverride != 0.04 {
		t.Errorf("override = %v", sc.YieldOverride)
	}

	f = flag.NewFlagSet("scenario", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-auto-yield"}); err != nil {
		t.Fatal(err)
	}
	f.Visit(func(fl *flag.Flag) { c.apply(fl.Name, &sc) })
	if sc.YieldOverride != nil {
		t.Error("expected -auto-yield to clear the override")
	}
}

func TestScenarioCmd_RejectsHorizonBeyondBound(t *testing.T) {
	c := &scenarioCmd{}
	f := flag.NewFlagSet("scenario", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-years", fmt.Sprint(calculator.MaxProjectionYears + 1)}); err != nil {
		t.Fatal(err)
	}
	_, err := c.update(f, model.Scenario{CurrentValue: 1000, YearsToProject: 10})
	if !errors.Is(err, calculator.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := exitStatus(err); got != subcommands.ExitUsageError {
		t.Errorf("exitStatus = %v, want usage error", got)
	}

	f = flag.NewFlagSet("scenario", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-years", "30"}); err != nil {
		t.Fatal(err)
	}
	sc, err := c.update(f, model.Scenario{CurrentValue: 1000, YearsToProject: 10})
	if err != nil || sc.YearsToProject != 30 {
		t.Errorf("update = %+v, %v", sc, err)
	}
}

func TestScenarioMarkdown(t *testing.T) {
	md := scenarioMarkdown(model.Scenario{CurrentValue: 30000, YearsToProject: 10}, "ILS")
	for _, want := range []string{"30,000.00", "calculated from deposits", "Years to project: 10", "Share moved: 100.00%"} {
		if !strings.Contains(md, want) {
			t.Errorf("missing %q in:\n%s", want, md)
		}
	}
}

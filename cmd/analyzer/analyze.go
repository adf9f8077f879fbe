package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/model"
	"ReinvestAnalyzer/internal/notifier"
	"ReinvestAnalyzer/internal/prompt"
	"ReinvestAnalyzer/internal/report"
	"ReinvestAnalyzer/internal/strategy"

	"github.com/google/subcommands"
)

type analyzeCmd struct {
	interactive bool
	yield       string
	value       string
	chart       string
	notify      bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "compare keeping the investment against moving it" }
func (*analyzeCmd) Usage() string {
	return `analyze [-i] [-value V] [-yield r] [-chart path|none] [-notify]

  Runs the analysis on the saved ledger and scenario, prints the report and
  writes the comparison chart. With -i every input is asked for interactively
  and saved for later runs.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.interactive, "i", false, "enter deposits and scenario interactively")
	f.StringVar(&c.yield, "yield", "", "annual yield of the current investment, overriding the calculated one")
	f.StringVar(&c.value, "value", "", "current worth of the investment, overriding the saved one")
	f.StringVar(&c.chart, "chart", "", "chart output path, 'none' to skip (default from config)")
	f.BoolVar(&c.notify, "notify", false, "send the result to the configured notification channels")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	sc := a.ledger.Scenario()
	if c.interactive {
		if sc, err = collectScenario(a, prompt.New(os.Stdin, os.Stdout)); err != nil {
			return exitStatus(err)
		}
	} else if len(a.ledger.Deposits()) == 0 {
		return exitStatus(fmt.Errorf("%w: no deposits recorded, use 'deposit' or 'analyze -i'", calculator.ErrValidation))
	}

	if c.value != "" {
		v, err := strconv.ParseFloat(c.value, 64)
		if err != nil {
			return exitStatus(fmt.Errorf("%w: -value: %v", calculator.ErrValidation, err))
		}
		sc.CurrentValue = v
	}
	if c.yield != "" {
		y, err := strconv.ParseFloat(c.yield, 64)
		if err != nil {
			return exitStatus(fmt.Errorf("%w: -yield: %v", calculator.ErrValidation, err))
		}
		sc.YieldOverride = &y
	}

	engine, err := a.engine()
	if err != nil {
		return exitStatus(err)
	}
	res, err := strategy.Analyze(engine, a.ledger.Deposits(), sc)
	if err != nil {
		return exitStatus(err)
	}
	if _, err := a.rec.RecordAnalysis(res); err != nil {
		a.log.WithError(err).Warn("record analysis")
	}

	a.printMarkdown(report.Markdown(res, a.cfg.Currency))

	chartPath := c.chart
	if chartPath == "" {
		chartPath = a.cfg.Chart.Output
	}
	if chartPath != "none" && chartPath != "" {
		if err := report.WriteChart(chartPath, res, a.cfg.Currency, a.cfg.Chart.Width, a.cfg.Chart.Height); err != nil {
			a.log.WithError(err).Warn("chart not written")
		} else {
			fmt.Printf("Chart saved as %s\n", chartPath)
		}
	}

	if c.notify {
		if err := a.notifier().Notify(ctx, "Reinvestment analysis", notifier.FormatAnalysis(res, a.cfg.Currency)); err != nil {
			return exitStatus(fmt.Errorf("notify: %w", err))
		}
	}
	return subcommands.ExitSuccess
}

// collectScenario asks for deposits and every scenario input, then saves the scenario.
func collectScenario(a *app, p *prompt.Prompter) (model.Scenario, error) {
	if err := p.Deposits(a.ledger); err != nil {
		return model.Scenario{}, err
	}
	value, commission, err := p.CurrentDetails()
	if err != nil {
		return model.Scenario{}, err
	}
	_, annual, err := calculator.ComputeYields(a.ledger.Deposits(), value)
	if err != nil {
		return model.Scenario{}, err
	}
	override, err := p.ConfirmYield(annual)
	if err != nil {
		return model.Scenario{}, err
	}
	p.Pause("\nPress Enter to continue to the new investment comparison...")

	ni, err := p.NewInvestmentDetails()
	if err != nil {
		return model.Scenario{}, err
	}
	share, err := p.ReinvestShare()
	if err != nil {
		return model.Scenario{}, err
	}

	sc := model.Scenario{
		CurrentValue:      value,
		CurrentCommission: commission,
		YieldOverride:     override,
		NewYield:          ni.Yield,
		NewCommission:     ni.Commission,
		NewTransactionFee: ni.TransactionFee,
		YearsToProject:    ni.Years,
		ReinvestShare:     share,
	}
	if err := a.ledger.SetScenario(sc); err != nil {
		return model.Scenario{}, err
	}
	return sc, nil
}

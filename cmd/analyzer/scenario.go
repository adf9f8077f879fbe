package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/model"
	"ReinvestAnalyzer/internal/report"

	"github.com/google/subcommands"
)

type scenarioCmd struct {
	value         float64
	commission    float64
	yield         float64
	autoYield     bool
	newYield      float64
	newCommission float64
	fee           float64
	years         int
	share         float64
}

func (*scenarioCmd) Name() string     { return "scenario" }
func (*scenarioCmd) Synopsis() string { return "update the saved scenario without prompts" }
func (*scenarioCmd) Usage() string {
	return `scenario [-value V] [-commission c] [-yield r | -auto-yield] [-new-yield r]
         [-new-commission c] [-fee f] [-years N] [-share s]

  Changes only the given fields of the scenario used by analyze and watch.
`
}

func (c *scenarioCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.value, "value", 0, "current worth of the investment")
	f.Float64Var(&c.commission, "commission", 0, "annual commission of the current investment")
	f.Float64Var(&c.yield, "yield", 0, "annual yield of the current investment, overriding the calculated one")
	f.BoolVar(&c.autoYield, "auto-yield", false, "use the calculated annual yield again")
	f.Float64Var(&c.newYield, "new-yield", 0, "expected annual yield of the new investment")
	f.Float64Var(&c.newCommission, "new-commission", 0, "annual commission of the new investment")
	f.Float64Var(&c.fee, "fee", 0, "one-time transaction fee of the new investment")
	f.IntVar(&c.years, "years", 0, "number of years to project")
	f.Float64Var(&c.share, "share", 0, "share of the post-tax capital to move, 0 < s <= 1")
}

func (c *scenarioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	sc, err := c.update(f, a.ledger.Scenario())
	if err != nil {
		return exitStatus(err)
	}
	if err := a.ledger.SetScenario(sc); err != nil {
		return exitStatus(err)
	}
	a.printMarkdown(scenarioMarkdown(sc, a.cfg.Currency))
	return subcommands.ExitSuccess
}

// update applies the flags set on the command line to sc and validates the result.
func (c *scenarioCmd) update(f *flag.FlagSet, sc model.Scenario) (model.Scenario, error) {
	f.Visit(func(fl *flag.Flag) { c.apply(fl.Name, &sc) })
	if err := calculator.ValidateScenario(sc); err != nil {
		return model.Scenario{}, err
	}
	return sc, nil
}

func (c *scenarioCmd) apply(name string, sc *model.Scenario) {
	switch name {
	case "value":
		sc.CurrentValue = c.value
	case "commission":
		sc.CurrentCommission = c.commission
	case "yield":
		y := c.yield
		sc.YieldOverride = &y
	case "auto-yield":
		if c.autoYield {
			sc.YieldOverride = nil
		}
	case "new-yield":
		sc.NewYield = c.newYield
	case "new-commission":
		sc.NewCommission = c.newCommission
	case "fee":
		sc.NewTransactionFee = c.fee
	case "years":
		sc.YearsToProject = c.years
	case "share":
		sc.ReinvestShare = c.share
	}
}

func scenarioMarkdown(sc model.Scenario, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Current value: %s\n", report.Money(sc.CurrentValue, currency))
	fmt.Fprintf(&b, "- Current commission: %s\n", report.Percent(sc.CurrentCommission))
	if sc.YieldOverride != nil {
		fmt.Fprintf(&b, "- Current yield: %s (manual)\n", report.Percent(*sc.YieldOverride))
	} else {
		fmt.Fprintf(&b, "- Current yield: calculated from deposits\n")
	}
	fmt.Fprintf(&b, "- New yield: %s\n", report.Percent(sc.NewYield))
	fmt.Fprintf(&b, "- New commission: %s\n", report.Percent(sc.NewCommission))
	fmt.Fprintf(&b, "- Transaction fee: %s\n", report.Percent(sc.NewTransactionFee))
	fmt.Fprintf(&b, "- Years to project: %d\n", sc.YearsToProject)
	share := sc.ReinvestShare
	if share == 0 {
		share = 1
	}
	fmt.Fprintf(&b, "- Share moved: %s\n", report.Percent(share))
	return b.String()
}

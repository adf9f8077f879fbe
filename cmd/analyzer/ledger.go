package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/report"

	"github.com/google/subcommands"
)

type depositCmd struct{}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record the total deposited in a year" }
func (*depositCmd) Usage() string {
	return `deposit <year> <amount>

  Sets the total amount deposited in the given year, replacing any previous amount.
`
}
func (*depositCmd) SetFlags(*flag.FlagSet) {}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "deposit requires <year> and <amount>")
		return subcommands.ExitUsageError
	}
	year, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return exitStatus(fmt.Errorf("%w: invalid year %q", calculator.ErrValidation, f.Arg(0)))
	}
	amount, err := strconv.ParseFloat(f.Arg(1), 64)
	if err != nil {
		return exitStatus(fmt.Errorf("%w: invalid amount %q", calculator.ErrValidation, f.Arg(1)))
	}

	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	if err := a.ledger.Add(year, amount); err != nil {
		return exitStatus(err)
	}
	fmt.Printf("Added deposit of %s for year %d\n", report.Money(amount, a.cfg.Currency), year)
	return subcommands.ExitSuccess
}

type undoCmd struct{}

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "remove the deposit with the latest year" }
func (*undoCmd) Usage() string {
	return `undo

  Removes the deposit with the latest year from the ledger.
`
}
func (*undoCmd) SetFlags(*flag.FlagSet) {}

func (c *undoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	year, amount, ok, err := a.ledger.Undo()
	if err != nil {
		return exitStatus(err)
	}
	if !ok {
		fmt.Println("No deposits to undo.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Removed deposit of %s for year %d\n", report.Money(amount, a.cfg.Currency), year)
	return subcommands.ExitSuccess
}

type ledgerCmd struct{}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "list recorded deposits and the saved scenario" }
func (*ledgerCmd) Usage() string {
	return `ledger

  Prints the deposits by year and the scenario used by analyze and watch.
`
}
func (*ledgerCmd) SetFlags(*flag.FlagSet) {}

func (c *ledgerCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	state := a.ledger.GetState()
	md := "## Deposits\n\n" + report.LedgerMarkdown(state.Deposits, a.cfg.Currency)
	md += "\n## Scenario\n\n" + scenarioMarkdown(state.Scenario, a.cfg.Currency)
	a.printMarkdown(md)
	return subcommands.ExitSuccess
}

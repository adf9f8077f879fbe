package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"ReinvestAnalyzer/internal/report"

	"github.com/google/subcommands"
)

type historyCmd struct {
	limit int
	id    string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded analyses" }
func (*historyCmd) Usage() string {
	return `history [-n N] [-id ID]

  Lists the most recent analyses, or the projection of one analysis with -id.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "number of analyses to list, 0 for all")
	f.StringVar(&c.id, "id", "", "show the stored projection of this analysis")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	if c.id != "" {
		points, err := a.rec.Projection(c.id)
		if err != nil {
			return exitStatus(err)
		}
		if len(points) == 0 {
			return exitStatus(fmt.Errorf("no projection stored for %s", c.id))
		}
		var b strings.Builder
		fmt.Fprintf(&b, "| Year | Current | New |\n|---:|---:|---:|\n")
		for _, p := range points {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", p.Year, report.Money(p.CurrentValue, a.cfg.Currency), report.Money(p.NewValue, a.cfg.Currency))
		}
		a.printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	records, err := a.rec.ListAnalyses(c.limit)
	if err != nil {
		return exitStatus(err)
	}
	a.printMarkdown(report.HistoryMarkdown(records, a.cfg.Currency))
	return subcommands.ExitSuccess
}

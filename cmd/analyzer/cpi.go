package main

import (
	"context"
	"flag"
	"fmt"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/report"

	"github.com/google/subcommands"
)

type cpiCmd struct {
	fetch bool
}

func (*cpiCmd) Name() string     { return "cpi" }
func (*cpiCmd) Synopsis() string { return "show or refresh the consumer price index table" }
func (*cpiCmd) Usage() string {
	return `cpi [-fetch]

  Prints the CPI table used for inflation adjustment. With -fetch the
  configured SDMX feed is queried first and its yearly values are cached.
`
}

func (c *cpiCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.fetch, "fetch", false, "refresh the table from cpi.source_url")
}

func (c *cpiCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	if c.fetch {
		col := a.collector()
		if col == nil {
			return exitStatus(fmt.Errorf("%w: cpi.source_url is not set", calculator.ErrConfiguration))
		}
		idx, values, err := col.Refresh(ctx, a.cpi)
		if err != nil {
			return exitStatus(err)
		}
		if err := a.rec.SaveCPI(values, "feed"); err != nil {
			a.log.WithError(err).Warn("cache CPI values")
		}
		a.cpi = idx
		if a.cached == nil {
			a.cached = make(map[int]float64, len(values))
		}
		for y, v := range values {
			a.cached[y] = v
		}
		fmt.Printf("Fetched %d years of CPI values\n", len(values))
	}

	a.printMarkdown(report.CPIMarkdown(a.cpi.Years(), a.cpi.At, a.cached))
	return subcommands.ExitSuccess
}

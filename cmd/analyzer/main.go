// Command analyzer compares keeping an investment against selling it, paying
// tax on the real gain and reinvesting the rest.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&analyzeCmd{}, "analysis")
	subcommands.Register(&historyCmd{}, "analysis")
	subcommands.Register(&watchCmd{}, "analysis")

	subcommands.Register(&depositCmd{}, "ledger")
	subcommands.Register(&undoCmd{}, "ledger")
	subcommands.Register(&ledgerCmd{}, "ledger")
	subcommands.Register(&scenarioCmd{}, "ledger")

	subcommands.Register(&cpiCmd{}, "cpi")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

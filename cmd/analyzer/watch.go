package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"ReinvestAnalyzer/internal/scheduler"

	"github.com/google/subcommands"
)

type watchCmd struct {
	now bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh CPI and re-run the saved scenario on a schedule" }
func (*watchCmd) Usage() string {
	return `watch [-now]

  Runs until interrupted. CPI values are refreshed on schedule.cpi_cron and the
  saved scenario is re-analyzed on schedule.analysis_cron; a notification is
  sent when the recommendation changes. Telegram bot commands /analyze,
  /ledger and /cpi are answered when the bot is configured.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.now, "now", os.Getenv("RUN_ON_START") == "true", "run the analysis once at start")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, a.collector(), a.ledger, a.notifier(), a.rec, a.cpi, a.cfg.TaxRate, a.cfg.Currency, a.log)
	if err := sched.RegisterAll(a.cfg.Schedule.CPICron, a.cfg.Schedule.AnalysisCron); err != nil {
		return exitStatus(err)
	}
	sched.Start()
	defer sched.Stop()

	if tn := a.telegram(); tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		a.log.Info("telegram polling started")
	}

	if c.now {
		a.log.Info("running analysis now")
		go sched.RunAnalysisNow()
	}

	a.log.Info("watching. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		a.log.Info("shutdown signal received, stopping...")
	case <-ctx.Done():
	}
	return subcommands.ExitSuccess
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/collector"
	"ReinvestAnalyzer/internal/config"
	"ReinvestAnalyzer/internal/ledger"
	"ReinvestAnalyzer/internal/notifier"
	"ReinvestAnalyzer/internal/recorder"
	"ReinvestAnalyzer/internal/report"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "", "path to the YAML or TOML config file (default $CONFIG_PATH or configs/config.yaml)")
	style      = flag.String("style", "dark", "glamour style for terminal output (dark, light, notty)")
)

// app holds everything a subcommand needs, built from the config file.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	ledger *ledger.Manager
	rec    recorder.Recorder
	cpi    *calculator.CpiIndex
	cached map[int]float64
}

func resolveConfigPath() string {
	if *configPath != "" {
		return *configPath
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func newLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// openApp loads the config and opens the ledger, the recorder and the CPI index.
func openApp() (*app, error) {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: config validation: %v", calculator.ErrConfiguration, err)
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	lm, err := ledger.NewManager(cfg.Ledger.StateFile, log)
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	a := &app{cfg: cfg, log: log, ledger: lm, rec: rec}
	if err := a.loadCPI(); err != nil {
		rec.Close()
		return nil, err
	}
	return a, nil
}

// loadCPI builds the index from the configured table overlaid with cached feed values.
func (a *app) loadCPI() error {
	base, err := calculator.NewCpiIndex(a.cfg.CPI.Values())
	if err != nil {
		return err
	}
	cached, err := a.rec.LoadCPI()
	if err != nil {
		a.log.WithError(err).Warn("load cached CPI values")
	}
	a.cpi = base
	a.cached = cached
	if len(cached) > 0 {
		if a.cpi, err = base.Merge(cached); err != nil {
			return err
		}
		a.log.WithField("years", len(cached)).Debug("cached CPI values applied")
	}
	return nil
}

func (a *app) Close() {
	if err := a.rec.Close(); err != nil {
		a.log.WithError(err).Warn("close recorder")
	}
}

func (a *app) engine() (*calculator.Engine, error) {
	return calculator.NewEngine(a.cpi, a.cfg.TaxRate)
}

// collector returns nil when no CPI feed is configured.
func (a *app) collector() *collector.Collector {
	if a.cfg.CPI.SourceURL == "" {
		return nil
	}
	feed := collector.NewSDMXFetcher(a.cfg.CPI.SourceURL, a.cfg.Proxy, a.cfg.CPI.GetTimeout(), a.log)
	return collector.NewCollector(a.log, feed)
}

// telegram returns nil when the bot is not configured.
func (a *app) telegram() *notifier.TelegramNotifier {
	if a.cfg.Telegram.BotToken == "" {
		return nil
	}
	return notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log)
}

func (a *app) notifier() notifier.Notifier {
	var ns notifier.Multi
	if tn := a.telegram(); tn != nil {
		ns = append(ns, tn)
	}
	if e := a.cfg.Email; e.Host != "" {
		ns = append(ns, notifier.NewEmailNotifier(e.Host, e.Port, e.Username, e.Password, e.From, e.To, a.log))
	}
	if len(ns) == 0 {
		return notifier.NoopNotifier{}
	}
	return ns
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func (a *app) printMarkdown(md string) {
	out, err := report.Render(md, *style)
	if err != nil {
		a.log.WithError(err).Debug("markdown rendering failed, printing raw text")
		out = md
	}
	fmt.Print(out)
}

// exitStatus reports err on stderr and maps it to an exit status.
func exitStatus(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, calculator.ErrValidation) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

package scheduler

import (
	"context"
	"fmt"
	"sync"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/collector"
	"ReinvestAnalyzer/internal/ledger"
	"ReinvestAnalyzer/internal/model"
	"ReinvestAnalyzer/internal/notifier"
	"ReinvestAnalyzer/internal/recorder"
	"ReinvestAnalyzer/internal/strategy"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the watch-mode cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector // nil when no CPI feed is configured
	Ledger    *ledger.Manager
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context
	TaxRate   float64
	Currency  string

	mu         sync.RWMutex
	cpi        *calculator.CpiIndex
	lastAction model.Action // last action seen by this process
	log        *logrus.Logger
}

// NewScheduler creates a new Scheduler starting from the given CPI index.
func NewScheduler(ctx context.Context, col *collector.Collector, lm *ledger.Manager, n notifier.Notifier,
	rec recorder.Recorder, cpi *calculator.CpiIndex, taxRate float64, currency string, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Ledger:    lm,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
		TaxRate:   taxRate,
		Currency:  currency,
		cpi:       cpi,
		log:       log,
	}
}

// RegisterAll registers the CPI refresh and re-analysis tasks. The CPI task is
// skipped when there is no collector.
func (s *Scheduler) RegisterAll(cpiCron, analysisCron string) error {
	if s.Collector != nil {
		if _, err := s.Cron.AddFunc(cpiCron, s.cpiTask); err != nil {
			return fmt.Errorf("register cpi task: %w", err)
		}
	}
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.WithField("jobs", len(s.Cron.Entries())).Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunAnalysisNow executes the analysis task immediately (for -now / RUN_ON_START).
func (s *Scheduler) RunAnalysisNow() {
	s.analysisTask()
}

// CPI returns the index currently used for analyses.
func (s *Scheduler) CPI() *calculator.CpiIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cpi
}

// RefreshCPI fetches CPI values, caches them and swaps the index in use.
func (s *Scheduler) RefreshCPI() (map[int]float64, error) {
	if s.Collector == nil {
		return nil, fmt.Errorf("no CPI source configured")
	}
	idx, values, err := s.Collector.Refresh(s.Ctx, s.CPI())
	if err != nil {
		return nil, err
	}
	if err := s.Recorder.SaveCPI(values, "feed"); err != nil {
		s.log.WithError(err).Error("cache CPI values")
	}
	s.mu.Lock()
	s.cpi = idx
	s.mu.Unlock()
	return values, nil
}

// RunAnalysis analyzes the saved ledger and scenario and records the result.
// changed reports whether the recommendation differs from the last recorded run.
// When the recorder has no history, the last run of this process is used instead.
func (s *Scheduler) RunAnalysis() (res *model.AnalysisResult, prev model.Action, changed bool, err error) {
	engine, err := calculator.NewEngine(s.CPI(), s.TaxRate)
	if err != nil {
		return nil, "", false, err
	}
	res, err = strategy.Analyze(engine, s.Ledger.Deposits(), s.Ledger.Scenario())
	if err != nil {
		return nil, "", false, err
	}

	s.mu.Lock()
	prev = s.lastAction
	s.lastAction = res.Recommendation.Action
	s.mu.Unlock()

	last, err := s.Recorder.ListAnalyses(1)
	if err != nil {
		s.log.WithError(err).Warn("load previous analysis")
	}
	if len(last) > 0 {
		prev = last[0].Action
	}
	changed = prev != "" && prev != res.Recommendation.Action

	if _, err := s.Recorder.RecordAnalysis(res); err != nil {
		s.log.WithError(err).Error("record analysis")
	}
	return res, prev, changed, nil
}

func (s *Scheduler) cpiTask() {
	s.log.Info("running CPI refresh")
	values, err := s.RefreshCPI()
	if err != nil {
		s.log.WithError(err).Error("CPI refresh failed")
		s.trySend("CPI refresh failed", fmt.Sprintf("❌ CPI refresh failed: %s", err))
		return
	}
	idx := s.CPI()
	s.trySend("CPI refreshed", notifier.FormatCPIRefresh(values, idx.LatestYear(), idx.Latest()))
}

func (s *Scheduler) analysisTask() {
	s.log.Info("running scheduled analysis")
	res, prev, changed, err := s.RunAnalysis()
	if err != nil {
		s.log.WithError(err).Error("scheduled analysis failed")
		s.trySend("Analysis failed", fmt.Sprintf("❌ Scheduled analysis failed: %s", err))
		return
	}
	fields := logrus.Fields{"action": res.Recommendation.Action, "break_even": res.BreakEven.String()}
	switch {
	case prev == "":
		s.log.WithFields(fields).Info("first analysis recorded")
		s.trySend("Reinvestment analysis", notifier.FormatAnalysis(res, s.Currency))
	case changed:
		s.log.WithFields(fields).WithField("previous", prev).Info("recommendation changed")
		s.trySend("Recommendation changed", notifier.FormatChange(prev, res, s.Currency))
	default:
		s.log.WithFields(fields).Info("recommendation unchanged")
	}
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/analyze":
		res, _, _, err := s.RunAnalysis()
		if err != nil {
			return fmt.Sprintf("❌ %s", err)
		}
		return notifier.FormatAnalysis(res, s.Currency)
	case "/ledger":
		return notifier.FormatLedger(s.Ledger.Deposits(), s.Currency)
	case "/cpi":
		values, err := s.RefreshCPI()
		if err != nil {
			return fmt.Sprintf("❌ %s", err)
		}
		idx := s.CPI()
		return notifier.FormatCPIRefresh(values, idx.LatestYear(), idx.Latest())
	default:
		return "Available commands:\n• /analyze\n• /ledger\n• /cpi"
	}
}

func (s *Scheduler) trySend(subject, text string) {
	if err := s.Notifier.Notify(s.Ctx, subject, text); err != nil {
		s.log.WithError(err).Error("send notification")
	}
}

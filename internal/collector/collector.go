package collector

import (
	"context"
	"errors"
	"fmt"

	"ReinvestAnalyzer/internal/calculator"

	"github.com/sirupsen/logrus"
)

// StaticFetcher returns a fixed table. Used for the configured table and in tests.
type StaticFetcher struct {
	Label  string
	Values map[int]float64
	Err    error
}

func (s *StaticFetcher) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return "static"
}

func (s *StaticFetcher) FetchCPI(_ context.Context) (map[int]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[int]float64, len(s.Values))
	for y, v := range s.Values {
		out[y] = v
	}
	return out, nil
}

// Collector gathers CPI values from its fetchers and overlays them on a base index.
type Collector struct {
	Fetchers []Fetcher
	log      *logrus.Logger
}

// NewCollector creates a new Collector. Later fetchers win on overlapping years.
func NewCollector(log *logrus.Logger, fetchers ...Fetcher) *Collector {
	return &Collector{Fetchers: fetchers, log: log}
}

// Collect queries every fetcher. A failing fetcher is skipped with a warning;
// an error is returned only when none succeeded.
func (c *Collector) Collect(ctx context.Context) (map[int]float64, error) {
	if len(c.Fetchers) == 0 {
		return nil, fmt.Errorf("no CPI fetchers configured")
	}
	merged := make(map[int]float64)
	var errs []error
	ok := 0
	for _, f := range c.Fetchers {
		values, err := f.FetchCPI(ctx)
		if err != nil {
			c.log.WithError(err).WithField("fetcher", f.Name()).Warn("CPI fetch failed")
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
			continue
		}
		ok++
		for y, v := range values {
			if !calculator.PositiveFinite(v) {
				c.log.WithFields(logrus.Fields{"fetcher": f.Name(), "year": y, "value": v}).Warn("ignoring invalid CPI value")
				continue
			}
			merged[y] = v
		}
		c.log.WithFields(logrus.Fields{"fetcher": f.Name(), "years": len(values)}).Info("CPI values collected")
	}
	if ok == 0 {
		return nil, fmt.Errorf("collect CPI: %w", errors.Join(errs...))
	}
	return merged, nil
}

// Refresh collects values and returns base overlaid with them.
func (c *Collector) Refresh(ctx context.Context, base *calculator.CpiIndex) (*calculator.CpiIndex, map[int]float64, error) {
	values, err := c.Collect(ctx)
	if err != nil {
		return nil, nil, err
	}
	idx, err := base.Merge(values)
	if err != nil {
		return nil, nil, fmt.Errorf("merge CPI: %w", err)
	}
	c.log.WithFields(logrus.Fields{"latest_year": idx.LatestYear(), "latest": idx.Latest()}).Info("CPI index refreshed")
	return idx, values, nil
}

package model

import (
	"strconv"
	"time"
)

// Series holds projected values for year indices 0..N.
type Series []float64

// Final returns the last projected value, or 0 for an empty series.
func (s Series) Final() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Horizon returns N, the number of projected years.
func (s Series) Horizon() int {
	if len(s) == 0 {
		return 0
	}
	return len(s) - 1
}

// BreakEven is the first year the new path strictly exceeds the current one.
type BreakEven int

// Never means no crossover within the search horizon.
const Never BreakEven = -1

// Reached reports whether a crossover year was found.
func (b BreakEven) Reached() bool { return b >= 0 }

func (b BreakEven) String() string {
	if !b.Reached() {
		return "Never"
	}
	return strconv.Itoa(int(b))
}

// AdjustedDeposit is one line of the inflation adjustment trace.
type AdjustedDeposit struct {
	Year     int
	Amount   float64
	CPI      float64
	Adjusted float64
}

// AnalysisResult bundles everything derived from one analysis run.
type AnalysisResult struct {
	ID             string
	CreatedAt      time.Time
	Current        Profile
	New            Profile
	ReinvestShare  float64
	CurrentValue   float64
	TotalDeposited float64
	AdjustedTotal  float64
	Adjustments    []AdjustedDeposit
	LatestCPI      float64
	OverallYield   float64
	AnnualYield    float64
	RealGain       float64
	Tax            float64
	PostTax        float64
	BreakEven      BreakEven
	CurrentSeries  Series
	NewSeries      Series
	Recommendation Recommendation
}

// CurrentFinal is the final projected value of keeping the holding.
func (r *AnalysisResult) CurrentFinal() float64 { return r.CurrentSeries.Final() }

// NewFinal is the final projected value of reinvesting.
func (r *AnalysisResult) NewFinal() float64 { return r.NewSeries.Final() }

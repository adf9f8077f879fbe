package report

import (
	"fmt"
	"strings"

	"ReinvestAnalyzer/internal/model"
	"ReinvestAnalyzer/internal/recorder"
)

// Markdown renders an analysis result as a markdown document.
func Markdown(res *model.AnalysisResult, currency string) string {
	var b strings.Builder
	m := func(v float64) string { return Money(v, currency) }

	fmt.Fprintf(&b, "# Reinvestment analysis\n\n")

	fmt.Fprintf(&b, "## Deposits\n\n")
	fmt.Fprintf(&b, "| Year | Deposited | CPI | Adjusted |\n")
	fmt.Fprintf(&b, "|---:|---:|---:|---:|\n")
	for _, a := range res.Adjustments {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", a.Year, m(a.Amount), Number(a.CPI, 1), m(a.Adjusted))
	}
	fmt.Fprintf(&b, "| **Total** | %s | %s | %s |\n\n", m(res.TotalDeposited), Number(res.LatestCPI, 1), m(res.AdjustedTotal))

	fmt.Fprintf(&b, "## Current investment\n\n")
	fmt.Fprintf(&b, "- Current value: %s\n", m(res.CurrentValue))
	fmt.Fprintf(&b, "- Overall yield: %s\n", Percent(res.OverallYield))
	fmt.Fprintf(&b, "- Annual yield: %s\n", Percent(res.AnnualYield))
	fmt.Fprintf(&b, "- Yield used for projection: %s\n", Percent(res.Current.Yield))
	fmt.Fprintf(&b, "- Annual commission: %s\n\n", Percent(res.Current.Commission))

	fmt.Fprintf(&b, "## Tax on withdrawal\n\n")
	fmt.Fprintf(&b, "- Real gain: %s\n", m(res.RealGain))
	fmt.Fprintf(&b, "- Tax owed: %s\n", m(res.Tax))
	fmt.Fprintf(&b, "- Value after tax: %s\n\n", m(res.PostTax))

	fmt.Fprintf(&b, "## New investment\n\n")
	fmt.Fprintf(&b, "- Expected annual yield: %s\n", Percent(res.New.Yield))
	fmt.Fprintf(&b, "- Annual commission: %s\n", Percent(res.New.Commission))
	fmt.Fprintf(&b, "- Transaction fee: %s\n", Percent(res.New.TransactionFee))
	if res.ReinvestShare < 1 {
		fmt.Fprintf(&b, "- Share moved: %s\n", Percent(res.ReinvestShare))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Projection\n\n")
	fmt.Fprintf(&b, "| Year | Current | New | Difference |\n")
	fmt.Fprintf(&b, "|---:|---:|---:|---:|\n")
	for i := range res.CurrentSeries {
		var nv float64
		if i < len(res.NewSeries) {
			nv = res.NewSeries[i]
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i, m(res.CurrentSeries[i]), m(nv), m(nv-res.CurrentSeries[i]))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Recommendation\n\n")
	if res.BreakEven.Reached() {
		fmt.Fprintf(&b, "Break-even year: **%d**\n\n", int(res.BreakEven))
	} else {
		fmt.Fprintf(&b, "Break-even year: **Never**\n\n")
	}
	rec := res.Recommendation
	fmt.Fprintf(&b, "**%s**: %s\n\n", rec.Action, rec.Message)
	fmt.Fprintf(&b, "Difference after %d years: %s\n", res.CurrentSeries.Horizon(), m(rec.Advantage))
	if rec.WarningMsg != "" {
		fmt.Fprintf(&b, "\n> ⚠️ %s\n", rec.WarningMsg)
	}
	return b.String()
}

// LedgerMarkdown renders the deposit ledger.
func LedgerMarkdown(ledger model.Ledger, currency string) string {
	if len(ledger) == 0 {
		return "No deposits recorded.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "| Year | Deposited |\n|---:|---:|\n")
	for _, y := range ledger.Years() {
		fmt.Fprintf(&b, "| %d | %s |\n", y, Money(ledger[y], currency))
	}
	fmt.Fprintf(&b, "| **Total** | %s |\n", Money(ledger.Total(), currency))
	return b.String()
}

// CPIMarkdown renders a CPI table, marking the years that came from the feed.
func CPIMarkdown(years []int, value func(int) float64, fetched map[int]float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "| Year | CPI | Source |\n|---:|---:|---|\n")
	for _, y := range years {
		source := "config"
		if _, ok := fetched[y]; ok {
			source = "feed"
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", y, Number(value(y), 2), source)
	}
	return b.String()
}

// HistoryMarkdown renders recorded analyses, newest first.
func HistoryMarkdown(records []recorder.AnalysisRecord, currency string) string {
	if len(records) == 0 {
		return "No analyses recorded.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "| Date | Value | Tax | Years | Keep | Move | Break-even | Action |\n")
	fmt.Fprintf(&b, "|---|---:|---:|---:|---:|---:|---:|---|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s | %s | %s |\n",
			r.CreatedAt.Format("2006-01-02 15:04"), Money(r.CurrentValue, currency), Money(r.Tax, currency),
			r.Years, Money(r.CurrentFinal, currency), Money(r.NewFinal, currency), r.BreakEven, r.Action)
	}
	return b.String()
}

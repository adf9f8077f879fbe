package notifier

import (
	"fmt"
	"html"
	"strings"

	"ReinvestAnalyzer/internal/model"

	"github.com/shopspring/decimal"
)

func escape(s string) string { return html.EscapeString(s) }

func amount(v float64, currency string) string {
	return decimal.NewFromFloat(v).StringFixed(2) + " " + currency
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).Shift(2).StringFixed(2) + "%"
}

// FormatAnalysis formats an analysis result into a Telegram message.
func FormatAnalysis(res *model.AnalysisResult, currency string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Reinvestment analysis</b> | %s\n\n", res.CreatedAt.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("Current value: %s\n", amount(res.CurrentValue, currency)))
	b.WriteString(fmt.Sprintf("Deposited: %s (adjusted %s)\n", amount(res.TotalDeposited, currency), amount(res.AdjustedTotal, currency)))
	b.WriteString(fmt.Sprintf("Annual yield: %s | overall %s\n\n", percent(res.AnnualYield), percent(res.OverallYield)))

	b.WriteString("🧾 <b>Tax</b>\n")
	b.WriteString(fmt.Sprintf("  Real gain: %s\n", amount(res.RealGain, currency)))
	b.WriteString(fmt.Sprintf("  Tax owed: %s\n", amount(res.Tax, currency)))
	b.WriteString(fmt.Sprintf("  After tax: %s\n\n", amount(res.PostTax, currency)))

	b.WriteString(fmt.Sprintf("📈 <b>After %d years</b>\n", res.CurrentSeries.Horizon()))
	b.WriteString(fmt.Sprintf("  Keep: %s\n", amount(res.CurrentFinal(), currency)))
	b.WriteString(fmt.Sprintf("  Move: %s\n", amount(res.NewFinal(), currency)))
	b.WriteString(fmt.Sprintf("  Break-even year: %s\n\n", res.BreakEven))

	rec := res.Recommendation
	b.WriteString(fmt.Sprintf("💡 <b>%s</b> %s\n", rec.Action, escape(rec.Message)))
	if rec.WarningMsg != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", escape(rec.WarningMsg)))
	}
	return b.String()
}

// FormatChange announces a recommendation that differs from the previous run.
func FormatChange(prev model.Action, res *model.AnalysisResult, currency string) string {
	return fmt.Sprintf("🔔 Recommendation changed: <b>%s</b> → <b>%s</b>\n\n%s",
		prev, res.Recommendation.Action, FormatAnalysis(res, currency))
}

// FormatLedger lists deposits by year.
func FormatLedger(ledger model.Ledger, currency string) string {
	if len(ledger) == 0 {
		return "📦 <b>Ledger</b>\n\nNo deposits recorded."
	}
	var b strings.Builder
	b.WriteString("📦 <b>Ledger</b>\n\n")
	for _, y := range ledger.Years() {
		b.WriteString(fmt.Sprintf("%d: %s\n", y, amount(ledger[y], currency)))
	}
	b.WriteString(fmt.Sprintf("Total: %s\n", amount(ledger.Total(), currency)))
	return b.String()
}

// FormatCPIRefresh summarises fetched CPI values.
func FormatCPIRefresh(values map[int]float64, latestYear int, latest float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📉 <b>CPI refreshed</b> | %d years fetched\n", len(values)))
	b.WriteString(fmt.Sprintf("Latest: %d = %s\n", latestYear, decimal.NewFromFloat(latest).StringFixed(2)))
	return b.String()
}

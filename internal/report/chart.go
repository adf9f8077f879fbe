package report

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"ReinvestAnalyzer/internal/model"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderChart renders a PNG line chart of both projections against the year index.
// A zero-year horizon is drawn as one marker per investment.
func RenderChart(res *model.AnalysisResult, currency string, width, height int) ([]byte, error) {
	n := len(res.CurrentSeries)
	if n == 0 || len(res.NewSeries) != n {
		return nil, fmt.Errorf("need two non-empty series of equal length, got %d and %d", n, len(res.NewSeries))
	}

	years := make([]float64, n)
	for i := range years {
		years[i] = float64(i)
	}

	current := chart.ContinuousSeries{
		Name: "Current Investment",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: years,
		YValues: []float64(res.CurrentSeries),
	}
	next := chart.ContinuousSeries{
		Name: "New Investment",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("16a34a"),
			StrokeWidth: 2.5,
		},
		XValues: years,
		YValues: []float64(res.NewSeries),
	}

	graph := chart.Chart{
		Title:  "Investment Comparison",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "Years",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Value",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return Money(f, currency)
				}
				return ""
			},
		},
		Series: []chart.Series{current, next},
	}
	if n == 1 {
		// go-chart needs a non-zero range on both axes
		lo := math.Min(res.CurrentSeries[0], res.NewSeries[0])
		hi := math.Max(res.CurrentSeries[0], res.NewSeries[0])
		pad := math.Max(math.Abs(hi)*0.1, 1)
		graph.XAxis.Range = &chart.ContinuousRange{Min: -1, Max: 1}
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
		for i, s := range graph.Series {
			cs := s.(chart.ContinuousSeries)
			cs.Style.DotWidth = 5
			cs.Style.DotColor = cs.Style.StrokeColor
			graph.Series[i] = cs
		}
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteChart renders the chart and writes it to path.
func WriteChart(path string, res *model.AnalysisResult, currency string, width, height int) error {
	png, err := RenderChart(res, currency, width, height)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

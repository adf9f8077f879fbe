package recorder

import (
	"time"

	"ReinvestAnalyzer/internal/model"
)

// AnalysisRecord is the stored summary of one analysis run.
type AnalysisRecord struct {
	ID             string
	CreatedAt      time.Time
	CurrentValue   float64
	TotalDeposited float64
	AdjustedTotal  float64
	AnnualYield    float64
	Tax            float64
	PostTax        float64
	NewYield       float64
	ReinvestShare  float64
	Years          int
	CurrentFinal   float64
	NewFinal       float64
	BreakEven      model.BreakEven
	Action         model.Action
}

// ProjectionPoint is one year of a stored projection.
type ProjectionPoint struct {
	Year         int
	CurrentValue float64
	NewValue     float64
}

// Recorder persists analysis history and the CPI cache.
type Recorder interface {
	RecordAnalysis(res *model.AnalysisResult) (string, error)
	ListAnalyses(limit int) ([]AnalysisRecord, error)
	Projection(id string) ([]ProjectionPoint, error)
	SaveCPI(values map[int]float64, source string) error
	LoadCPI() (map[int]float64, error)
	Close() error
}

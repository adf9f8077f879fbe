package recorder

import "ReinvestAnalyzer/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(res *model.AnalysisResult) (string, error) { return res.ID, nil }
func (n *NoopRecorder) ListAnalyses(_ int) ([]AnalysisRecord, error)             { return nil, nil }
func (n *NoopRecorder) Projection(_ string) ([]ProjectionPoint, error)           { return nil, nil }
func (n *NoopRecorder) SaveCPI(_ map[int]float64, _ string) error                { return nil }
func (n *NoopRecorder) LoadCPI() (map[int]float64, error)                        { return nil, nil }
func (n *NoopRecorder) Close() error                                             { return nil }

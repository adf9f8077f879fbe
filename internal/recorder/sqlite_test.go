package recorder

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"ReinvestAnalyzer/internal/model"

	"github.com/sirupsen/logrus"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "analyzer.db"), log)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func sampleResult(action model.Action, createdAt time.Time) *model.AnalysisResult {
	return &model.AnalysisResult{
		CreatedAt:      createdAt,
		New:            model.Profile{Yield: 0.07},
		ReinvestShare:  1,
		CurrentValue:   30000,
		TotalDeposited: 20000,
		AdjustedTotal:  22613.96,
		AnnualYield:    0.0699,
		Tax:            1846.51,
		PostTax:        28153.49,
		BreakEven:      model.Never,
		CurrentSeries:  model.Series{30000, 31000, 32000},
		NewSeries:      model.Series{28000, 29500, 31500},
		Recommendation: model.Recommendation{Action: action},
	}
}

func TestSQLiteRecorder_RecordAndList(t *testing.T) {
	r := openTestRecorder(t)

	base := time.Unix(1700000000, 0)
	first := sampleResult(model.ActionStay, base)
	id, err := r.RecordAnalysis(first)
	if err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}
	if id == "" || first.ID != id {
		t.Fatalf("expected generated id on result, got %q / %q", id, first.ID)
	}
	second := sampleResult(model.ActionMove, base.Add(time.Hour))
	second.ID = "fixed-id"
	if _, err := r.RecordAnalysis(second); err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}

	recs, err := r.ListAnalyses(0)
	if err != nil {
		t.Fatalf("ListAnalyses: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "fixed-id" || recs[0].Action != model.ActionMove {
		t.Errorf("newest record = %+v", recs[0])
	}
	if recs[1].BreakEven != model.Never || recs[1].Years != 2 || recs[1].NewFinal != 31500 {
		t.Errorf("oldest record = %+v", recs[1])
	}
	if !recs[1].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", recs[1].CreatedAt, base)
	}

	recs, err = r.ListAnalyses(1)
	if err != nil || len(recs) != 1 {
		t.Fatalf("ListAnalyses(1) = %d records, err %v", len(recs), err)
	}
}

func TestSQLiteRecorder_Projection(t *testing.T) {
	r := openTestRecorder(t)
	id, err := r.RecordAnalysis(sampleResult(model.ActionStay, time.Now()))
	if err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}

	points, err := r.Projection(id)
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	want := []ProjectionPoint{{0, 30000, 28000}, {1, 31000, 29500}, {2, 32000, 31500}}
	if len(points) != len(want) {
		t.Fatalf("got %d points, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestSQLiteRecorder_CPICache(t *testing.T) {
	r := openTestRecorder(t)

	if err := r.SaveCPI(map[int]float64{2024: 113.8, 2025: 115.0}, "sdmx"); err != nil {
		t.Fatalf("SaveCPI: %v", err)
	}
	if err := r.SaveCPI(map[int]float64{2025: 116.2}, "sdmx"); err != nil {
		t.Fatalf("SaveCPI: %v", err)
	}

	got, err := r.LoadCPI()
	if err != nil {
		t.Fatalf("LoadCPI: %v", err)
	}
	if len(got) != 2 || got[2024] != 113.8 || got[2025] != 116.2 {
		t.Errorf("LoadCPI = %v", got)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	res := sampleResult(model.ActionMove, time.Now())
	res.ID = "x"
	if id, err := r.RecordAnalysis(res); err != nil || id != "x" {
		t.Errorf("RecordAnalysis = %q, %v", id, err)
	}
	if cpi, err := r.LoadCPI(); err != nil || len(cpi) != 0 {
		t.Errorf("LoadCPI = %v, %v", cpi, err)
	}
}

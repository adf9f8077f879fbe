package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ReinvestAnalyzer/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analyses, their projections and fetched CPI values to SQLite.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logrus.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets `history` read while `watch` writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Debug("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id              TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			current_value   REAL,
			total_deposited REAL,
			adjusted_total  REAL,
			annual_yield    REAL,
			tax             REAL,
			post_tax        REAL,
			new_yield       REAL,
			reinvest_share  REAL,
			years           INTEGER,
			current_final   REAL,
			new_final       REAL,
			break_even      INTEGER,
			action          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,

		`CREATE TABLE IF NOT EXISTS projections (
			analysis_id   TEXT NOT NULL REFERENCES analyses(id),
			year          INTEGER NOT NULL,
			current_value REAL,
			new_value     REAL,
			PRIMARY KEY (analysis_id, year)
		)`,

		`CREATE TABLE IF NOT EXISTS cpi_index (
			year       INTEGER PRIMARY KEY,
			value      REAL NOT NULL,
			source     TEXT,
			fetched_at INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis stores the result and both series, assigning an ID when the result has none.
func (r *SQLiteRecorder) RecordAnalysis(res *model.AnalysisResult) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO analyses
		(id, timestamp, current_value, total_deposited, adjusted_total, annual_yield,
		 tax, post_tax, new_yield, reinvest_share, years,
		 current_final, new_final, break_even, action)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.ID, res.CreatedAt.Unix(), res.CurrentValue, res.TotalDeposited, res.AdjustedTotal,
		res.AnnualYield, res.Tax, res.PostTax, res.New.Yield, res.ReinvestShare,
		res.CurrentSeries.Horizon(), res.CurrentFinal(), res.NewFinal(),
		int(res.BreakEven), string(res.Recommendation.Action),
	)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO projections (analysis_id, year, current_value, new_value) VALUES (?,?,?,?)`)
	if err != nil {
		return "", fmt.Errorf("prepare projection insert: %w", err)
	}
	defer stmt.Close()
	for i := range res.CurrentSeries {
		var nv float64
		if i < len(res.NewSeries) {
			nv = res.NewSeries[i]
		}
		if _, err := stmt.Exec(res.ID, i, res.CurrentSeries[i], nv); err != nil {
			return "", fmt.Errorf("insert projection year %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	r.log.WithFields(logrus.Fields{"id": res.ID, "action": res.Recommendation.Action}).Debug("analysis recorded")
	return res.ID, nil
}

// ListAnalyses returns the most recent analyses, newest first. limit <= 0 returns all.
func (r *SQLiteRecorder) ListAnalyses(limit int) ([]AnalysisRecord, error) {
	q := `SELECT id, timestamp, current_value, total_deposited, adjusted_total, annual_yield,
		tax, post_tax, new_yield, reinvest_share, years,
		current_final, new_final, break_even, action
		FROM analyses ORDER BY timestamp DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var ts int64
		var be int
		var action string
		if err := rows.Scan(&rec.ID, &ts, &rec.CurrentValue, &rec.TotalDeposited, &rec.AdjustedTotal,
			&rec.AnnualYield, &rec.Tax, &rec.PostTax, &rec.NewYield, &rec.ReinvestShare, &rec.Years,
			&rec.CurrentFinal, &rec.NewFinal, &be, &action); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		rec.CreatedAt = time.Unix(ts, 0)
		rec.BreakEven = model.BreakEven(be)
		rec.Action = model.Action(action)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Projection returns the stored series of one analysis, ordered by year.
func (r *SQLiteRecorder) Projection(id string) ([]ProjectionPoint, error) {
	rows, err := r.db.Query(`SELECT year, current_value, new_value FROM projections
		WHERE analysis_id = ? ORDER BY year`, id)
	if err != nil {
		return nil, fmt.Errorf("query projection: %w", err)
	}
	defer rows.Close()

	var out []ProjectionPoint
	for rows.Next() {
		var p ProjectionPoint
		if err := rows.Scan(&p.Year, &p.CurrentValue, &p.NewValue); err != nil {
			return nil, fmt.Errorf("scan projection: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveCPI upserts fetched yearly CPI values.
func (r *SQLiteRecorder) SaveCPI(values map[int]float64, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for year, v := range values {
		if _, err := tx.Exec(`INSERT INTO cpi_index (year, value, source, fetched_at) VALUES (?,?,?,?)
			ON CONFLICT(year) DO UPDATE SET value = excluded.value, source = excluded.source, fetched_at = excluded.fetched_at`,
			year, v, source, now); err != nil {
			return fmt.Errorf("upsert cpi %d: %w", year, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.log.WithFields(logrus.Fields{"years": len(values), "source": source}).Info("CPI cache updated")
	return nil
}

// LoadCPI returns the cached CPI values.
func (r *SQLiteRecorder) LoadCPI() (map[int]float64, error) {
	rows, err := r.db.Query(`SELECT year, value FROM cpi_index`)
	if err != nil {
		return nil, fmt.Errorf("query cpi: %w", err)
	}
	defer rows.Close()

	out := make(map[int]float64)
	for rows.Next() {
		var year int
		var v float64
		if err := rows.Scan(&year, &v); err != nil {
			return nil, fmt.Errorf("scan cpi: %w", err)
		}
		out[year] = v
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Debug("closing sqlite recorder")
	return r.db.Close()
}

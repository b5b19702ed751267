// Package plandb persists survey runs to a local SQLite database so plans
// and metrics can be regression-compared across runs.
package plandb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/seabed-data/surveyfig/internal/survey"
)

// Run is one persisted planning run: the scenario it was produced from, the
// track positions, and both metric sets.
type Run struct {
	RunID          string           `json:"run_id"`
	CreatedAt      int64            `json:"created_at"`
	ScenarioJSON   json.RawMessage  `json:"scenario_json,omitempty"`
	TrackPositions []float64        `json:"track_positions"`
	Adaptive       survey.MetricSet `json:"adaptive"`
	Baseline       survey.MetricSet `json:"baseline"`
}

// DB wraps the SQLite handle.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the run database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run db %s: %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS survey_runs (
			run_id TEXT PRIMARY KEY,
			created_at BIGINT,
			scenario_json TEXT,
			positions_json TEXT,
			adaptive_path_nm DOUBLE,
			adaptive_gap_pct DOUBLE,
			adaptive_overlap_pct DOUBLE,
			baseline_path_nm DOUBLE,
			baseline_gap_pct DOUBLE,
			baseline_overlap_pct DOUBLE
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create survey_runs table: %w", err)
	}

	return &DB{db}, nil
}

// SaveRun persists a run. If RunID is empty, a UUID is generated; if
// CreatedAt is zero, the current time is used. Returns the run id.
func (db *DB) SaveRun(run *Run) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	positionsJSON, err := json.Marshal(run.TrackPositions)
	if err != nil {
		return "", fmt.Errorf("marshal track positions: %w", err)
	}

	var scenarioStr interface{}
	if len(run.ScenarioJSON) > 0 {
		scenarioStr = string(run.ScenarioJSON)
	}

	_, err = db.Exec(`
		INSERT INTO survey_runs (
			run_id, created_at, scenario_json, positions_json,
			adaptive_path_nm, adaptive_gap_pct, adaptive_overlap_pct,
			baseline_path_nm, baseline_gap_pct, baseline_overlap_pct
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.CreatedAt, scenarioStr, string(positionsJSON),
		run.Adaptive.PathLengthNM, run.Adaptive.CoverageGapPct, run.Adaptive.AvgOverlapPct,
		run.Baseline.PathLengthNM, run.Baseline.CoverageGapPct, run.Baseline.AvgOverlapPct,
	)
	if err != nil {
		return "", fmt.Errorf("insert run %s: %w", run.RunID, err)
	}
	return run.RunID, nil
}

// GetRun loads a single run by id.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, created_at, scenario_json, positions_json,
		       adaptive_path_nm, adaptive_gap_pct, adaptive_overlap_pct,
		       baseline_path_nm, baseline_gap_pct, baseline_overlap_pct
		FROM survey_runs WHERE run_id = ?`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT run_id, created_at, scenario_json, positions_json,
		       adaptive_path_nm, adaptive_gap_pct, adaptive_overlap_pct,
		       baseline_path_nm, baseline_gap_pct, baseline_overlap_pct
		FROM survey_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var scenario, positions sql.NullString

	err := s.Scan(
		&run.RunID, &run.CreatedAt, &scenario, &positions,
		&run.Adaptive.PathLengthNM, &run.Adaptive.CoverageGapPct, &run.Adaptive.AvgOverlapPct,
		&run.Baseline.PathLengthNM, &run.Baseline.CoverageGapPct, &run.Baseline.AvgOverlapPct,
	)
	if err != nil {
		return nil, err
	}

	if scenario.Valid && scenario.String != "" {
		run.ScenarioJSON = json.RawMessage(scenario.String)
	}
	if positions.Valid && positions.String != "" {
		if err := json.Unmarshal([]byte(positions.String), &run.TrackPositions); err != nil {
			return nil, fmt.Errorf("unmarshal track positions: %w", err)
		}
	}
	return &run, nil
}

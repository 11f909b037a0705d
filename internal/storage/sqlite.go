// Package storage provides SQLite-based persistence for scenario run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/collide/internal/config"
	"github.com/vovakirdan/collide/internal/scenario"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one evaluated scenario set.
type Run struct {
	ID          string
	SetID       string
	Title       string
	Source      string
	Digest      string
	Total       int
	Passed      int
	Failed      int
	Unchecked   int
	Unsupported int
	Duration    time.Duration
	CreatedAt   time.Time
}

// OK reports whether the run had no failing case.
func (r Run) OK() bool {
	return r.Failed == 0
}

// CaseResult is the stored outcome of one case of a run.
type CaseResult struct {
	RunID     string
	Position  int
	Name      string
	Status    scenario.Status
	Colliding bool
	Expected  *bool
	Error     string
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			set_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			digest TEXT NOT NULL DEFAULT '',
			total INTEGER NOT NULL DEFAULT 0,
			passed INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			unchecked INTEGER NOT NULL DEFAULT 0,
			unsupported INTEGER NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_set_id ON runs(set_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS case_results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			colliding INTEGER NOT NULL,
			expected INTEGER,
			error TEXT,
			PRIMARY KEY (run_id, position)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a report and all of its case results.
// Returns the generated run ID.
func (s *Store) SaveRun(report scenario.Report) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs
		 (id, set_id, title, source, digest, total, passed, failed, unchecked, unsupported, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		report.SetID,
		report.Title,
		report.Source,
		report.Digest,
		report.Total(),
		report.Passed,
		report.Failed,
		report.Unchecked,
		report.Unsupported,
		report.Duration.Microseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	for i, res := range report.Results {
		var expected sql.NullBool
		if res.Expected != nil {
			expected = sql.NullBool{Bool: *res.Expected, Valid: true}
		}
		var errText sql.NullString
		if res.Err != nil {
			errText = sql.NullString{String: res.Err.Error(), Valid: true}
		}

		_, err = tx.Exec(
			`INSERT INTO case_results (run_id, position, name, status, colliding, expected, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, res.Case, string(res.Status), res.Colliding, expected, errText,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save case result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}

	return id, nil
}

const runColumns = `id, set_id, title, source, digest, total, passed, failed,
	unchecked, unsupported, duration_us, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var durationUs int64
	var createdAt any

	err := row.Scan(
		&r.ID,
		&r.SetID,
		&r.Title,
		&r.Source,
		&r.Digest,
		&r.Total,
		&r.Passed,
		&r.Failed,
		&r.Unchecked,
		&r.Unsupported,
		&durationUs,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	r.Duration = time.Duration(durationUs) * time.Microsecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty setID returns runs of every set.
func (s *Store) RecentRuns(setID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR set_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		setID, setID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its ID. Returns nil if no such run exists.
func (s *Store) RunByID(id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RunResults retrieves the case results of a run in case order.
func (s *Store) RunResults(runID string) ([]CaseResult, error) {
	rows, err := s.db.Query(
		`SELECT run_id, position, name, status, colliding, expected, error
		 FROM case_results
		 WHERE run_id = ?
		 ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query case results: %w", err)
	}
	defer rows.Close()

	var results []CaseResult
	for rows.Next() {
		var c CaseResult
		var status string
		var expected sql.NullBool
		var errText sql.NullString

		if err := rows.Scan(&c.RunID, &c.Position, &c.Name, &status, &c.Colliding, &expected, &errText); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		c.Status = scenario.Status(status)
		if expected.Valid {
			v := expected.Bool
			c.Expected = &v
		}
		c.Error = errText.String
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ClearRuns deletes all runs of the given set.
func (s *Store) ClearRuns(setID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM case_results WHERE run_id IN (SELECT id FROM runs WHERE set_id = ?)`,
		setID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear case results: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE set_id = ?", setID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// SetStats contains aggregated statistics for a scenario set.
type SetStats struct {
	SetID      string
	Runs       int
	FailedRuns int
	LastDigest string
	LastRun    time.Time
}

// GetSetStats retrieves aggregated statistics for a specific set.
func (s *Store) GetSetStats(setID string) (*SetStats, error) {
	stats := &SetStats{SetID: setID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN failed > 0 THEN 1 ELSE 0 END), 0)
		 FROM runs WHERE set_id = ?`,
		setID,
	).Scan(&stats.Runs, &stats.FailedRuns)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get set stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT digest, created_at FROM runs WHERE set_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		setID,
	).Scan(&stats.LastDigest, &lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// GetAllSetStats retrieves statistics for every set that has been run.
func (s *Store) GetAllSetStats() (map[string]*SetStats, error) {
	rows, err := s.db.Query(
		`SELECT set_id, COUNT(*), SUM(CASE WHEN failed > 0 THEN 1 ELSE 0 END), MAX(created_at)
		 FROM runs
		 GROUP BY set_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all set stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SetStats)
	for rows.Next() {
		var st SetStats
		var lastRun any
		if err := rows.Scan(&st.SetID, &st.Runs, &st.FailedRuns, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.SetID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

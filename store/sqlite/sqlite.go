/*
Package sqlite archives analysis runs for the reports surface.

PURPOSE:
  The analysis engine itself is stateless - every invocation recomputes
  from a freshly supplied dataset. The archive sits outside that core and
  records each run's summary and violations so the reports page can show
  compliance history across refreshes.

KEY TABLES:
  analysis_runs:  One row per refresh (reference date, counters)
  run_violations: Violations found in that run

CONCURRENCY:
  Uses sync.RWMutex for thread-safety around the connection. SQLite is
  opened with WAL so readers don't block each other.

USAGE:
  archive, err := sqlite.New("./data/cronograma.db")
  if err != nil {
      log.Fatal(err)
  }
  defer archive.Close()

  Use ":memory:" for tests.

SEE ALSO:
  - schedule/audit.go: Produces the violations archived here
  - api/handlers.go:   Saves a run on every refresh
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Pedreb/cronogramadefolgas/schedule"
)

// Store is the SQLite-backed run archive.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Run is one archived analysis run.
type Run struct {
	ID             int64
	ReferenceDate  schedule.Date
	RecordCount    int
	EmployeeCount  int
	ViolationCount int
	CriticalCount  int
	CreatedAt      time.Time
}

// New opens (or creates) the archive at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reference_date TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		employee_count INTEGER NOT NULL,
		violation_count INTEGER NOT NULL,
		critical_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_violations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
		employee TEXT NOT NULL,
		prior_end TEXT NOT NULL,
		next_start TEXT NOT NULL,
		gap_days INTEGER NOT NULL,
		severity TEXT NOT NULL,
		supervisor TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_run_violations_run
		ON run_violations(run_id);
	CREATE INDEX IF NOT EXISTS idx_analysis_runs_created
		ON analysis_runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun archives a run summary with its violations, returning the run id.
// Severity is stored denormalized so the history survives policy changes.
func (s *Store) SaveRun(ctx context.Context, run Run, violations []schedule.Violation, policy schedule.GapPolicy) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO analysis_runs
			(reference_date, record_count, employee_count, violation_count, critical_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ReferenceDate.String(),
		run.RecordCount,
		run.EmployeeCount,
		run.ViolationCount,
		run.CriticalCount,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, v := range violations {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_violations
				(run_id, employee, prior_end, next_start, gap_days, severity, supervisor)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID,
			v.Employee,
			v.PriorEnd.String(),
			v.NextStart.String(),
			v.GapDays,
			string(policy.Severity(v.GapDays)),
			v.Supervisor,
		)
		if err != nil {
			return 0, fmt.Errorf("insert violation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reference_date, record_count, employee_count, violation_count, critical_count, created_at
		FROM analysis_runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var refDate, createdAt string
		if err := rows.Scan(&r.ID, &refDate, &r.RecordCount, &r.EmployeeCount,
			&r.ViolationCount, &r.CriticalCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.ReferenceDate = schedule.ParseDate(refDate)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ArchivedViolation is a violation as stored, with the severity it was
// classified under at the time of the run.
type ArchivedViolation struct {
	Employee   string
	PriorEnd   schedule.Date
	NextStart  schedule.Date
	GapDays    int
	Severity   schedule.Severity
	Supervisor string
}

// GetRunViolations returns the violations archived for a run.
func (s *Store) GetRunViolations(ctx context.Context, runID int64) ([]ArchivedViolation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee, prior_end, next_start, gap_days, severity, supervisor
		FROM run_violations
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("get violations: %w", err)
	}
	defer rows.Close()

	var out []ArchivedViolation
	for rows.Next() {
		var v ArchivedViolation
		var priorEnd, nextStart, severity string
		var supervisor sql.NullString
		if err := rows.Scan(&v.Employee, &priorEnd, &nextStart, &v.GapDays, &severity, &supervisor); err != nil {
			return nil, fmt.Errorf("scan violation: %w", err)
		}
		v.PriorEnd = schedule.ParseDate(priorEnd)
		v.NextStart = schedule.ParseDate(nextStart)
		v.Severity = schedule.Severity(severity)
		v.Supervisor = supervisor.String
		out = append(out, v)
	}
	return out, rows.Err()
}

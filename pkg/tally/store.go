package tally

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS tally_outcomes (
    run_name   TEXT NOT NULL,
    outcome    TEXT NOT NULL,
    hits       INTEGER NOT NULL DEFAULT 1,
    first_seen DATETIME NOT NULL,
    last_seen  DATETIME NOT NULL,
    PRIMARY KEY (run_name, outcome)
);
`

// Count is the number of times an outcome was recorded for a run.
type Count struct {
	Outcome string `json:"outcome"`
	Hits    int64  `json:"hits"`
}

// SetupSchema creates the tally table. It is idempotent.
func SetupSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not create tally schema: %w", err)
	}
	return nil
}

// Store records outcomes using prepared statements on a shared database.
type Store struct {
	db         *sql.DB
	stmtRecord *sql.Stmt
	stmtCounts *sql.Stmt
	stmtRuns   *sql.Stmt
	stmtReset  *sql.Stmt
	logger     *slog.Logger
}

// NewStore prepares the statements the Store needs. SetupSchema must have
// been called on db first.
func NewStore(db *sql.DB) (*Store, error) {
	stmtRecord, err := db.Prepare(`INSERT INTO tally_outcomes (run_name, outcome, hits, first_seen, last_seen) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(run_name, outcome) DO UPDATE SET hits = hits + excluded.hits, last_seen = excluded.last_seen;`)
	if err != nil {
		return nil, err
	}

	stmtCounts, err := db.Prepare(`SELECT outcome, hits FROM tally_outcomes WHERE run_name = ? ORDER BY hits DESC, outcome ASC;`)
	if err != nil {
		return nil, err
	}

	stmtRuns, err := db.Prepare(`SELECT DISTINCT run_name FROM tally_outcomes ORDER BY run_name;`)
	if err != nil {
		return nil, err
	}

	stmtReset, err := db.Prepare(`DELETE FROM tally_outcomes WHERE run_name = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		stmtRecord: stmtRecord,
		stmtCounts: stmtCounts,
		stmtRuns:   stmtRuns,
		stmtReset:  stmtReset,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases the prepared statements. The database is left open.
func (s *Store) Close() {
	_ = s.stmtRecord.Close()
	_ = s.stmtCounts.Close()
	_ = s.stmtRuns.Close()
	_ = s.stmtReset.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Record adds one hit for outcome in run.
func (s *Store) Record(ctx context.Context, run, outcome string) error {
	now := time.Now().UTC()
	if _, err := s.stmtRecord.ExecContext(ctx, run, outcome, 1, now, now); err != nil {
		return fmt.Errorf("could not record outcome '%s' for run '%s': %w", outcome, run, err)
	}
	return nil
}

// RecordAll adds one hit per element of outcomes in a single transaction.
// Repeated outcomes are folded together before they are written.
func (s *Store) RecordAll(ctx context.Context, run string, outcomes []string) error {
	if len(outcomes) == 0 {
		return nil
	}

	hits := make(map[string]int64)
	var order []string
	for _, outcome := range outcomes {
		if _, ok := hits[outcome]; !ok {
			order = append(order, outcome)
		}
		hits[outcome]++
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmt := tx.StmtContext(ctx, s.stmtRecord)
	now := time.Now().UTC()
	for _, outcome := range order {
		if _, err = stmt.ExecContext(ctx, run, outcome, hits[outcome], now, now); err != nil {
			return fmt.Errorf("could not record outcome '%s' for run '%s': %w", outcome, run, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	s.logger.DebugContext(ctx, "Outcomes recorded",
		slog.String("run", run),
		slog.Int("outcomes", len(outcomes)),
		slog.Int("distinct_outcomes", len(order)),
	)
	return nil
}

// Counts returns the outcomes of run, most frequent first.
func (s *Store) Counts(ctx context.Context, run string) ([]Count, error) {
	rows, err := s.stmtCounts.QueryContext(ctx, run)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var counts []Count
	for rows.Next() {
		var count Count
		if err = rows.Scan(&count.Outcome, &count.Hits); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Runs returns the names of all runs with recorded outcomes.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.stmtRuns.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var runs []string
	for rows.Next() {
		var run string
		if err = rows.Scan(&run); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Reset removes every outcome recorded for run.
func (s *Store) Reset(ctx context.Context, run string) error {
	res, err := s.stmtReset.ExecContext(ctx, run)
	if err != nil {
		return fmt.Errorf("could not reset run '%s': %w", run, err)
	}
	rowsAffected, _ := res.RowsAffected()
	s.logger.InfoContext(ctx, "Run reset",
		slog.String("run", run),
		slog.Int64("outcomes_removed", rowsAffected),
	)
	return nil
}

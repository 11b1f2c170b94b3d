package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/viant/sfreport/model"
)

const driver = "sqlite3"

const schema = `
CREATE TABLE IF NOT EXISTS export_runs (
	id TEXT PRIMARY KEY,
	zip_path TEXT,
	instance TEXT,
	api_version TEXT,
	folder_name TEXT,
	total INTEGER,
	successful INTEGER,
	failed INTEGER,
	started_at DATETIME,
	ended_at DATETIME
);
CREATE TABLE IF NOT EXISTS export_failures (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT,
	report_id TEXT,
	report_name TEXT,
	report_type TEXT,
	error_message TEXT
);
`

// Run is a recorded export run.
type Run struct {
	ID         string    `json:"id"`
	ZipPath    string    `json:"zip"`
	Instance   string    `json:"instance"`
	APIVersion string    `json:"apiVersion"`
	FolderName string    `json:"folderName,omitempty"`
	Total      int       `json:"total"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
}

// Store is a sqlite backed run ledger.
type Store struct {
	db *sql.DB
}

// Record saves a finished run with its failures.
func (s *Store) Record(ctx context.Context, result *model.ExportResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO export_runs (id, zip_path, instance, api_version, folder_name, total, successful, failed, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID, result.ZipPath, result.Instance, result.APIVersion, result.FolderName,
		result.Total, len(result.Successful), len(result.Failed), result.StartedAt.UTC(), result.EndedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", result.RunID, err)
	}
	for _, failure := range result.Failed {
		_, err = tx.ExecContext(ctx, `INSERT INTO export_failures (run_id, report_id, report_name, report_type, error_message) VALUES (?, ?, ?, ?, ?)`,
			result.RunID, failure.ID, failure.Name, failure.Type, failure.Error)
		if err != nil {
			return fmt.Errorf("failed to save failure of run %s: %w", result.RunID, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs first; limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, zip_path, instance, api_version, folder_name, total, successful, failed, started_at, ended_at
		FROM export_runs ORDER BY started_at DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.ZipPath, &run.Instance, &run.APIVersion, &run.FolderName,
			&run.Total, &run.Successful, &run.Failed, &run.StartedAt, &run.EndedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Failures returns the failed reports of a run in recorded order.
func (s *Store) Failures(ctx context.Context, runID string) ([]model.Failure, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT report_id, report_name, report_type, error_message
		FROM export_failures WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []model.Failure
	for rows.Next() {
		var failure model.Failure
		if err := rows.Scan(&failure.ID, &failure.Name, &failure.Type, &failure.Error); err != nil {
			return nil, err
		}
		failures = append(failures, failure)
	}
	return failures, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Open opens (creating when needed) the ledger at dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialise history at %s: %w", dsn, err)
	}
	return &Store{db: db}, nil
}

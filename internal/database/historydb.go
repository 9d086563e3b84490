package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mcpguard/guardkit/internal/model"
)

// dbFileName is the history database file name inside the data directory.
const dbFileName = "guardkit.db"

// HistoryDB stores clean-run records in a single SQLite file.
// SQLite allows only one writer, so the connection pool is capped at one
// connection; runs are short-lived, so contention is not a concern.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database under dbDir.
// When CreateIfNotExists is false and no database exists, Open fails
// instead of silently creating an empty history.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rwc allows creation,
	// mode=rw requires an existing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per clean run. Totals are NULL when the report had no
	-- "Issues Found" summary line.
	CREATE TABLE IF NOT EXISTS clean_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		removed_count INTEGER NOT NULL,
		original_total INTEGER,
		new_total INTEGER,
		summary_updated INTEGER NOT NULL DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_clean_runs_input ON clean_runs(input_path);
	CREATE INDEX IF NOT EXISTS idx_clean_runs_timestamp ON clean_runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// InsertCleanRun records one completed clean run and returns its row ID.
// A missing RunID is assigned a fresh UUID, and a zero Timestamp is set to
// the current time, so callers only fill in the run statistics.
func (hdb *HistoryDB) InsertCleanRun(ctx context.Context, rec *model.CleanRecord) (int64, error) {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	query := `
	INSERT INTO clean_runs (run_id, input_path, output_path, removed_count,
		original_total, new_total, summary_updated, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		rec.RunID,
		rec.InputPath,
		rec.OutputPath,
		rec.RemovedCount,
		nullableTotal(rec.OriginalTotal),
		nullableTotal(rec.NewTotal),
		rec.SummaryUpdated,
		rec.Timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert clean run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert ID: %w", err)
	}
	rec.ID = id

	return id, nil
}

// ListCleanRuns returns clean runs newest first. When inputPath is non-empty
// only runs for that report file are returned. limit caps the result size;
// zero or negative means no limit.
func (hdb *HistoryDB) ListCleanRuns(ctx context.Context, inputPath string, limit int) ([]model.CleanRecord, error) {
	query := `
	SELECT id, run_id, input_path, output_path, removed_count,
		original_total, new_total, summary_updated, timestamp
	FROM clean_runs
	`
	args := []any{}

	if inputPath != "" {
		query += " WHERE input_path = ?"
		args = append(args, inputPath)
	}
	query += " ORDER BY timestamp DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clean runs: %w", err)
	}
	defer rows.Close()

	var records []model.CleanRecord
	for rows.Next() {
		var rec model.CleanRecord
		var originalTotal, newTotal sql.NullInt64

		if err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&rec.InputPath,
			&rec.OutputPath,
			&rec.RemovedCount,
			&originalTotal,
			&newTotal,
			&rec.SummaryUpdated,
			&rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan clean run: %w", err)
		}

		rec.OriginalTotal = totalFromNullable(originalTotal)
		rec.NewTotal = totalFromNullable(newTotal)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clean runs: %w", err)
	}

	return records, nil
}

// nullableTotal maps model.TotalUnknown to SQL NULL.
func nullableTotal(n int) any {
	if n == model.TotalUnknown {
		return nil
	}
	return n
}

// totalFromNullable maps SQL NULL back to model.TotalUnknown.
func totalFromNullable(n sql.NullInt64) int {
	if !n.Valid {
		return model.TotalUnknown
	}
	return int(n.Int64)
}

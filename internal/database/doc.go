// Package database provides SQLite-backed storage for clean-run history.
// Each clean run is recorded as one row so operators can audit which
// report files were filtered, when, and how many blocks were removed.
package database

// Package sqlite persists check results in a local SQLite database.
// The check_results table is the append-only log the version registry is
// rehydrated from at startup.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/orsaqc/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/orsaqc/internal/core/domain"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.ResultSink  = (*Store)(nil)
	_ driven.ResultQuery = (*Store)(nil)
)

// Store is a SQLite-backed result sink and query surface.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the results database under dataDir.
// If dataDir is empty, defaults to ~/.orsaqc/data/results.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".orsaqc", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "results.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// WriteResults appends a batch of check results in one transaction.
func (s *Store) WriteResults(ctx context.Context, results []domain.CheckResult) (int, error) {
	if len(results) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO check_results
			(institute_id, file_name, fingerprint, version, check_name,
			 description, passed, value, processed_at, business_ref, reporting_year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		var value sql.NullFloat64
		if r.Value != nil {
			value = sql.NullFloat64{Float64: *r.Value, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			r.InstituteID, r.FileName, string(r.Fingerprint), r.Version,
			r.CheckName, r.Description, boolToInt(r.Passed), value,
			r.ProcessedAt, nullString(r.BusinessRef), nullInt(r.ReportingYear),
		); err != nil {
			return 0, fmt.Errorf("inserting result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(results), nil
}

// ExistingVersions returns the distinct version assignments accumulated by
// prior runs, one record per (institute, fingerprint) pair.
func (s *Store) ExistingVersions(ctx context.Context) ([]domain.VersionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT institute_id, fingerprint, MAX(version)
		FROM check_results
		GROUP BY institute_id, fingerprint
	`)
	if err != nil {
		return nil, fmt.Errorf("querying versions: %w", err)
	}
	defer rows.Close()

	var records []domain.VersionRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec domain.VersionRecord
		var fp string
		if err := rows.Scan(&rec.InstituteID, &fp, &rec.Version); err != nil {
			return nil, fmt.Errorf("scanning version record: %w", err)
		}
		rec.Fingerprint = domain.Fingerprint(fp)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating version records: %w", err)
	}
	return records, nil
}

// ResultsForInstitute returns stored results for one institute, optionally
// filtered to a single version (0 returns all versions).
func (s *Store) ResultsForInstitute(
	ctx context.Context,
	instituteID string,
	version int,
) ([]domain.CheckResult, error) {
	query := `
		SELECT institute_id, file_name, fingerprint, version, check_name,
		       description, passed, value, processed_at, business_ref, reporting_year
		FROM check_results
		WHERE institute_id = ?
	`
	args := []any{instituteID}
	if version > 0 {
		query += " AND version = ?"
		args = append(args, version)
	}
	query += " ORDER BY version, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []domain.CheckResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}

func scanResult(rows *sql.Rows) (*domain.CheckResult, error) {
	var r domain.CheckResult
	var fp string
	var passed int
	var value sql.NullFloat64
	var businessRef sql.NullString
	var reportingYear sql.NullInt64

	if err := rows.Scan(&r.InstituteID, &r.FileName, &fp, &r.Version,
		&r.CheckName, &r.Description, &passed, &value, &r.ProcessedAt,
		&businessRef, &reportingYear); err != nil {
		return nil, fmt.Errorf("scanning result: %w", err)
	}

	r.Fingerprint = domain.Fingerprint(fp)
	r.Passed = passed != 0
	if value.Valid {
		r.Value = &value.Float64
	}
	r.BusinessRef = businessRef.String
	r.ReportingYear = int(reportingYear.Int64)

	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Storage owns the single shared database handle. Queries are never issued
// concurrently from within one request: catalog composition reads depend on
// each other's resolved ids. Cross-request contention is serialized by the
// one-connection pool below.
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database at path, applies pragmas and runs
// migrations.
func New(path string) (*Storage, error) {
	slog.Info("connecting to db", "path", path)
	db, err := Connect(path)
	if err != nil {
		return nil, err
	}

	storage := &Storage{db}
	if err := storage.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("successfully connected to db")
	return storage, nil
}

func Connect(path string) (*sql.DB, error) {
	dsn := "file:" + filepath.ToSlash(path) +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(ON)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Single shared connection: the engine serializes writes anyway and the
	// read model issues strictly sequential queries.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates all tables in foreign-key order. Idempotent.
func (s *Storage) Migrate() error {
	if err := s.CreateThreadsTable(); err != nil {
		return fmt.Errorf("failed to create threads table: %w", err)
	}
	if err := s.CreatePostsTable(); err != nil {
		return fmt.Errorf("failed to create posts table: %w", err)
	}
	if err := s.CreateFilesTable(); err != nil {
		return fmt.Errorf("failed to create files table: %w", err)
	}
	return nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable. Used by readiness probes.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// row is a raw result row keyed by column name. Values carry the driver's
// native types: int64, string, []byte or nil.
type row map[string]any

func scanRow(rows *sql.Rows, columns []string) (row, error) {
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}
	if err := rows.Scan(pointers...); err != nil {
		return nil, err
	}

	r := make(row, len(columns))
	for i, name := range columns {
		r[name] = values[i]
	}
	return r, nil
}

// fetchOne runs a single-row query. A missing row is a nil result, never an
// error.
func (s *Storage) fetchOne(query string, args ...any) (row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	r, err := scanRow(rows, columns)
	if err != nil {
		return nil, err
	}
	return r, rows.Err()
}

// fetchAll runs a multi-row query. No matches yield an empty slice, not nil.
func (s *Storage) fetchAll(query string, args ...any) ([]row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []row{}
	for rows.Next() {
		r, err := scanRow(rows, columns)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// execute runs a statement that produces no rows (DDL, pragma).
func (s *Storage) execute(query string) error {
	_, err := s.db.Exec(query)
	return err
}

// run executes an insert/update/delete and returns the number of affected
// rows and, for inserts, the generated identity value.
func (s *Storage) run(query string, args ...any) (affected int64, lastId int64, err error) {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, 0, err
	}
	affected, err = result.RowsAffected()
	if err != nil {
		return 0, 0, err
	}
	lastId, err = result.LastInsertId()
	if err != nil {
		return 0, 0, err
	}
	return affected, lastId, nil
}

// Typed accessors for raw row values. The driver returns INTEGER columns as
// int64 and booleans are integer-encoded in storage.

func (r row) int64At(column string) int64 {
	switch v := r[column].(type) {
	case int64:
		return v
	default:
		return 0
	}
}

func (r row) intAt(column string) int {
	return int(r.int64At(column))
}

func (r row) stringAt(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func (r row) boolAt(column string) bool {
	return r.int64At(column) != 0
}

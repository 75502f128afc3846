package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store defines the interface for string persistence.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	FindByValue(ctx context.Context, value string) (*Record, error)
	FindByHash(ctx context.Context, hash string) (*Record, error)
	DeleteByValue(ctx context.Context, value string) error
	ListAll(ctx context.Context) ([]Record, error)
	Search(ctx context.Context, clause Clause) ([]Record, error)
	PruneBefore(ctx context.Context, olderThan time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	insertString *sql.Stmt
	byValue      *sql.Stmt
	byHash       *sql.Stmt
	deleteString *sql.Stmt
}

var _ Store = (*SQLiteStore)(nil)

const selectColumns = `SELECT id, value, sha256_hash, properties, created_at, updated_at FROM strings`

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertString, err = s.db.Prepare(`
		INSERT INTO strings (value, sha256_hash, properties, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.byValue, err = s.db.Prepare(selectColumns + ` WHERE value = ?`)
	if err != nil {
		return err
	}

	s.byHash, err = s.db.Prepare(selectColumns + ` WHERE sha256_hash = ?`)
	if err != nil {
		return err
	}

	s.deleteString, err = s.db.Prepare(`DELETE FROM strings WHERE value = ?`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999999-07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// Create inserts rec in a single statement. The table's UNIQUE constraints
// decide conflicts, so two concurrent creates of the same value resolve to
// exactly one success and one ErrConflict. ID and timestamps are populated
// on success.
func (s *SQLiteStore) Create(ctx context.Context, rec *Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = rec.CreatedAt

	props := rec.Properties
	if len(props) == 0 {
		props = []byte("{}")
	}

	ts := rec.CreatedAt.UTC().Format(timeLayout)
	res, err := s.insertString.ExecContext(ctx, rec.Value, rec.Hash, string(props), ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %q: %w", rec.Hash, ErrConflict)
		}
		return fmt.Errorf("insert string: %w", err)
	}

	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// FindByValue retrieves the record whose value matches exactly.
func (s *SQLiteStore) FindByValue(ctx context.Context, value string) (*Record, error) {
	return s.scanOne(s.byValue.QueryRowContext(ctx, value))
}

// FindByHash retrieves the record by its SHA-256 content hash.
func (s *SQLiteStore) FindByHash(ctx context.Context, hash string) (*Record, error) {
	return s.scanOne(s.byHash.QueryRowContext(ctx, hash))
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var r Record
	var props, created, updated string
	if err := row.Scan(&r.ID, &r.Value, &r.Hash, &props, &created, &updated); err != nil {
		return nil, err
	}
	r.Properties = []byte(props)
	r.CreatedAt, _ = parseTimestamp(created)
	r.UpdatedAt, _ = parseTimestamp(updated)
	return &r, nil
}

func (s *SQLiteStore) scanOne(row *sql.Row) (*Record, error) {
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get string: %w", err)
	}
	return r, nil
}

// DeleteByValue removes the record whose value matches exactly.
func (s *SQLiteStore) DeleteByValue(ctx context.Context, value string) error {
	res, err := s.deleteString.ExecContext(ctx, value)
	if err != nil {
		return fmt.Errorf("delete string: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every record in insertion order.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]Record, error) {
	return s.Search(ctx, Clause{})
}

// Search returns the records matching clause in insertion order. Clause
// arguments are always bound, never interpolated.
func (s *SQLiteStore) Search(ctx context.Context, clause Clause) ([]Record, error) {
	query := selectColumns
	if clause.Where != "" {
		query += " WHERE " + clause.Where
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, clause.Args...)
	if err != nil {
		return nil, fmt.Errorf("query strings: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan string: %w", err)
		}
		records = append(records, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// PruneBefore deletes records created before olderThan.
func (s *SQLiteStore) PruneBefore(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM strings WHERE created_at < ?", olderThan.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("prune strings: %w", err)
	}
	return res.RowsAffected()
}

// PurgeAll deletes every stored string.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM strings"); err != nil {
		return fmt.Errorf("purge strings: %w", err)
	}
	return nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM strings").Scan(&stats.TotalStrings)
	if err != nil {
		return nil, fmt.Errorf("count strings: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM strings WHERE json_extract(properties, '$.is_palindrome') = 1",
	).Scan(&stats.Palindromes)
	if err != nil {
		return nil, fmt.Errorf("count palindromes: %w", err)
	}

	if stats.TotalStrings > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx, "SELECT MIN(created_at), MAX(created_at) FROM strings").Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("string time range: %w", err)
		}
		stats.Oldest, _ = parseTimestamp(oldestStr)
		stats.Newest, _ = parseTimestamp(newestStr)
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err == nil {
			stats.DatabaseSizeBytes = pageCount * pageSize
		}
	}

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.insertString, s.byValue, s.byHash, s.deleteString}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}

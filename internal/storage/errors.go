package storage

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound indicates that no string matched the lookup.
	ErrNotFound = errors.New("string not found")

	// ErrConflict indicates that the value or its hash is already stored.
	ErrConflict = errors.New("string already exists")
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

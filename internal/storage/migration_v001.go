package storage

import "database/sql"

// migrateV001 creates the strings table and its indexes. Every statement uses
// IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS strings (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			value       TEXT NOT NULL UNIQUE,
			sha256_hash TEXT NOT NULL UNIQUE,
			properties  TEXT NOT NULL DEFAULT '{}',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_strings_created_at ON strings(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

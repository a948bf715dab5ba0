package storage

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up:      migration001InitialSchema,
	},
	{
		Version: 2,
		Name:    "add_lookup_indexes",
		Up:      migration002AddLookupIndexes,
	},
}

// runMigrations executes all pending migrations
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue // Already applied
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec(`
			INSERT INTO schema_migrations (version, name) VALUES (?, ?)
		`, migration.Version, migration.Name)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// ensureMigrationsTable creates the schema_migrations table if missing
func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// getAppliedMigrations returns the set of already-applied migration versions
func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// migration001InitialSchema creates the issuances table. The unique index
// makes SaveIssuances idempotent across repeated imports of the same export.
func migration001InitialSchema(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE issuances (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			issued_at DATETIME NOT NULL,
			item_serial TEXT NOT NULL DEFAULT '',
			item_name TEXT NOT NULL,
			issued_to TEXT NOT NULL DEFAULT '',
			quantity REAL NOT NULL CHECK (quantity > 0),
			unit_of_measure TEXT NOT NULL DEFAULT '',
			item_category TEXT NOT NULL DEFAULT '',
			week_label TEXT NOT NULL DEFAULT '',
			reference TEXT NOT NULL DEFAULT '',
			department TEXT NOT NULL,
			batch_no TEXT NOT NULL DEFAULT '',
			store TEXT NOT NULL DEFAULT '',
			received_by TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE UNIQUE INDEX idx_issuances_dedupe ON issuances (
			issued_at, item_serial, item_name, issued_to, department,
			quantity, reference, batch_no
		);
	`)
	return err
}

// migration002AddLookupIndexes speeds up the identifier and department
// lookups the aggregation queries run on every request.
func migration002AddLookupIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX idx_issuances_item_name ON issuances (item_name COLLATE NOCASE);
		CREATE INDEX idx_issuances_item_serial ON issuances (item_serial);
		CREATE INDEX idx_issuances_department ON issuances (department COLLATE NOCASE);
		CREATE INDEX idx_issuances_issued_at ON issuances (issued_at);
	`)
	return err
}

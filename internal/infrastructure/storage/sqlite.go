package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brownsdata/ingredient-allocator/internal/domain/usage"
)

// Storage provides SQLite database access for the issuance history.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveIssuances bulk-inserts issuance records inside one transaction.
// Duplicate rows (per the dedupe index) are ignored, so re-importing the
// same sheet export is a no-op. Returns the number of rows inserted.
func (s *Storage) SaveIssuances(records []IssuanceRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO issuances
		(issued_at, item_serial, item_name, issued_to, quantity,
		 unit_of_measure, item_category, week_label, reference,
		 department, batch_no, store, received_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range records {
		res, err := stmt.Exec(
			r.IssuedAt,
			r.ItemSerial,
			r.ItemName,
			r.IssuedTo,
			r.Quantity,
			r.UnitOfMeasure,
			r.ItemCategory,
			r.WeekLabel,
			r.Reference,
			r.Department,
			r.BatchNo,
			r.Store,
			r.ReceivedBy,
		)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to insert issuance for %q: %w", r.ItemName, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit issuances: %w", err)
	}
	return inserted, nil
}

// ListTransactions returns the transaction view the aggregator consumes.
func (s *Storage) ListTransactions(filters TransactionFilters) ([]usage.Transaction, error) {
	query := `
		SELECT item_serial, item_name, department, issued_to, quantity, issued_at
		FROM issuances
		WHERE 1=1
	`
	var args []interface{}

	if filters.SinceYear > 0 {
		query += " AND issued_at >= ?"
		args = append(args, time.Date(filters.SinceYear, time.January, 1, 0, 0, 0, 0, time.UTC))
	}
	if filters.Department != "" {
		query += " AND department = ? COLLATE NOCASE"
		args = append(args, filters.Department)
	}
	query += " ORDER BY issued_at DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []usage.Transaction
	for rows.Next() {
		var tx usage.Transaction
		if err := rows.Scan(&tx.ItemSerial, &tx.ItemName, &tx.Department, &tx.Section, &tx.Quantity, &tx.IssuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// ListItemNames returns distinct item names for lookup/autocomplete.
func (s *Storage) ListItemNames(query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}

	sqlQuery := `SELECT DISTINCT item_name FROM issuances`
	var args []interface{}
	if query != "" {
		sqlQuery += ` WHERE item_name LIKE ? COLLATE NOCASE`
		args = append(args, "%"+query+"%")
	}
	sqlQuery += ` ORDER BY item_name COLLATE NOCASE LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query item names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan item name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Stats returns aggregate statistics about the loaded history.
func (s *Storage) Stats() (*DatasetStats, error) {
	stats := &DatasetStats{}

	row := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(DISTINCT item_name),
		       COUNT(DISTINCT department)
		FROM issuances
	`)
	if err := row.Scan(&stats.Issuances, &stats.Items, &stats.Departments); err != nil {
		return nil, fmt.Errorf("failed to scan stats: %w", err)
	}

	if stats.Issuances > 0 {
		// Plain column selects keep the declared DATETIME type so the
		// driver hands back time.Time; MIN()/MAX() would not.
		row = s.db.QueryRow(`SELECT issued_at FROM issuances ORDER BY issued_at ASC LIMIT 1`)
		if err := row.Scan(&stats.EarliestAt); err != nil {
			return nil, fmt.Errorf("failed to scan earliest issuance: %w", err)
		}
		row = s.db.QueryRow(`SELECT issued_at FROM issuances ORDER BY issued_at DESC LIMIT 1`)
		if err := row.Scan(&stats.LatestAt); err != nil {
			return nil, fmt.Errorf("failed to scan latest issuance: %w", err)
		}
	}

	return stats, nil
}

package storage

import (
	"github.com/brownsdata/ingredient-allocator/internal/domain/usage"
)

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	IssuanceRepository
	Close() error
}

// IssuanceRepository handles issuance history operations
type IssuanceRepository interface {
	// SaveIssuances bulk-inserts issuance records, skipping rows already
	// present, and returns the number actually inserted. Safe to re-run
	// on the same export.
	SaveIssuances(records []IssuanceRecord) (int, error)

	// ListTransactions returns the cleaned transaction view of the history
	// for the aggregation engine, newest first.
	ListTransactions(filters TransactionFilters) ([]usage.Transaction, error)

	// ListItemNames returns distinct item names matching query (substring,
	// case-insensitive; empty query = all), alphabetically, capped at limit.
	ListItemNames(query string, limit int) ([]string, error)

	// Stats returns aggregate statistics about the loaded history
	Stats() (*DatasetStats, error)
}

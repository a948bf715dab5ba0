package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/brownsdata/ingredient-allocator/internal/domain/usage"
)

// MockRepository is an in-memory Repository for tests.
type MockRepository struct {
	mu      sync.Mutex
	records []IssuanceRecord

	// Error overrides for failure-path tests
	ListTransactionsErr error
	ListItemNamesErr    error
	StatsErr            error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty in-memory repository.
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// AddIssuance adds a record directly, bypassing dedupe. Test helper.
func (m *MockRepository) AddIssuance(record IssuanceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.ID = int64(len(m.records) + 1)
	m.records = append(m.records, record)
}

// SaveIssuances appends all records and reports them all as inserted.
func (m *MockRepository) SaveIssuances(records []IssuanceRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		r.ID = int64(len(m.records) + 1)
		m.records = append(m.records, r)
	}
	return len(records), nil
}

// ListTransactions returns the transaction view of the stored records.
func (m *MockRepository) ListTransactions(filters TransactionFilters) ([]usage.Transaction, error) {
	if m.ListTransactionsErr != nil {
		return nil, m.ListTransactionsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var transactions []usage.Transaction
	for _, r := range m.records {
		if filters.SinceYear > 0 && r.IssuedAt.Year() < filters.SinceYear {
			continue
		}
		if filters.Department != "" && !strings.EqualFold(r.Department, filters.Department) {
			continue
		}
		transactions = append(transactions, usage.Transaction{
			ItemSerial: r.ItemSerial,
			ItemName:   r.ItemName,
			Department: r.Department,
			Section:    r.IssuedTo,
			Quantity:   r.Quantity,
			IssuedAt:   r.IssuedAt,
		})
	}
	return transactions, nil
}

// ListItemNames returns distinct names matching query, sorted.
func (m *MockRepository) ListItemNames(query string, limit int) ([]string, error) {
	if m.ListItemNamesErr != nil {
		return nil, m.ListItemNamesErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	seen := make(map[string]bool)
	var names []string
	needle := strings.ToLower(query)
	for _, r := range m.records {
		if needle != "" && !strings.Contains(strings.ToLower(r.ItemName), needle) {
			continue
		}
		if !seen[r.ItemName] {
			seen[r.ItemName] = true
			names = append(names, r.ItemName)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// Stats returns aggregate statistics over the stored records.
func (m *MockRepository) Stats() (*DatasetStats, error) {
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &DatasetStats{Issuances: len(m.records)}
	items := make(map[string]bool)
	departments := make(map[string]bool)
	for i, r := range m.records {
		items[r.ItemName] = true
		departments[strings.ToLower(r.Department)] = true
		if i == 0 || r.IssuedAt.Before(stats.EarliestAt) {
			stats.EarliestAt = r.IssuedAt
		}
		if i == 0 || r.IssuedAt.After(stats.LatestAt) {
			stats.LatestAt = r.IssuedAt
		}
	}
	stats.Items = len(items)
	stats.Departments = len(departments)
	return stats, nil
}

// Close is a no-op for the mock.
func (m *MockRepository) Close() error {
	return nil
}

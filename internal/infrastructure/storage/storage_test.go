package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func issuance(name, serial, dept, section string, qty float64, issuedAt time.Time) IssuanceRecord {
	return IssuanceRecord{
		IssuedAt:      issuedAt,
		ItemSerial:    serial,
		ItemName:      name,
		IssuedTo:      section,
		Quantity:      qty,
		UnitOfMeasure: "KG",
		Department:    dept,
		Store:         "Main Store",
	}
}

func TestStorage_SaveAndListTransactions(t *testing.T) {
	store := newTestStorage(t)

	issuedAt := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	inserted, err := store.SaveIssuances([]IssuanceRecord{
		issuance("Mozzarella", "1001", "Pizza", "Line 1", 12.5, issuedAt),
		issuance("Mozzarella", "1001", "Salads", "Prep", 4, issuedAt.Add(24*time.Hour)),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	transactions, err := store.ListTransactions(TransactionFilters{})
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	// Newest first
	assert.Equal(t, "Salads", transactions[0].Department)
	assert.Equal(t, "Prep", transactions[0].Section)
	assert.Equal(t, 4.0, transactions[0].Quantity)
	assert.Equal(t, "Pizza", transactions[1].Department)
	assert.Equal(t, "1001", transactions[1].ItemSerial)
}

func TestStorage_SaveIssuances_Idempotent(t *testing.T) {
	store := newTestStorage(t)

	batch := []IssuanceRecord{
		issuance("Flour", "2001", "Bakery", "", 25, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)),
		issuance("Flour", "2001", "Pastry", "", 10, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)),
	}

	inserted, err := store.SaveIssuances(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Re-importing the same export inserts nothing new.
	inserted, err = store.SaveIssuances(batch)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	transactions, err := store.ListTransactions(TransactionFilters{})
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
}

func TestStorage_ListTransactions_Filters(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.SaveIssuances([]IssuanceRecord{
		issuance("Flour", "", "Bakery", "", 25, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
		issuance("Flour", "", "Bakery", "", 30, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		issuance("Flour", "", "Pastry", "", 10, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	transactions, err := store.ListTransactions(TransactionFilters{SinceYear: 2024})
	require.NoError(t, err)
	assert.Len(t, transactions, 2)

	transactions, err = store.ListTransactions(TransactionFilters{Department: "bakery"})
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	for _, tx := range transactions {
		assert.Equal(t, "Bakery", tx.Department)
	}

	transactions, err = store.ListTransactions(TransactionFilters{SinceYear: 2024, Department: "Bakery"})
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestStorage_ListItemNames(t *testing.T) {
	store := newTestStorage(t)

	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := store.SaveIssuances([]IssuanceRecord{
		issuance("Bread Flour", "", "Bakery", "", 25, now),
		issuance("Cake Flour", "", "Pastry", "", 10, now.Add(time.Hour)),
		issuance("Sugar", "", "Pastry", "", 15, now.Add(2*time.Hour)),
		issuance("Bread Flour", "", "Bakery", "", 20, now.Add(3*time.Hour)),
	})
	require.NoError(t, err)

	names, err := store.ListItemNames("", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bread Flour", "Cake Flour", "Sugar"}, names)

	names, err = store.ListItemNames("flour", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bread Flour", "Cake Flour"}, names)

	names, err = store.ListItemNames("flour", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bread Flour"}, names)
}

func TestStorage_Stats(t *testing.T) {
	store := newTestStorage(t)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Issuances)

	earliest := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	latest := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	_, err = store.SaveIssuances([]IssuanceRecord{
		issuance("Flour", "", "Bakery", "", 25, earliest),
		issuance("Sugar", "", "Bakery", "", 10, latest),
		issuance("Sugar", "", "Pastry", "", 5, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	stats, err = store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Issuances)
	assert.Equal(t, 2, stats.Items)
	assert.Equal(t, 2, stats.Departments)
	assert.True(t, stats.EarliestAt.Equal(earliest), "earliest %s", stats.EarliestAt)
	assert.True(t, stats.LatestAt.Equal(latest), "latest %s", stats.LatestAt)
}

func TestStorage_RejectsNonPositiveQuantity(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.SaveIssuances([]IssuanceRecord{
		issuance("Flour", "", "Bakery", "", 0, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	assert.Error(t, err)
}

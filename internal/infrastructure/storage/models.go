package storage

import "time"

// IssuanceRecord is one row of the stock check-out history: an ingredient
// issued from the store to a department on a given date. Field layout
// mirrors the upstream CHECK_OUT sheet.
type IssuanceRecord struct {
	ID            int64     `json:"id"`
	IssuedAt      time.Time `json:"issued_at"`
	ItemSerial    string    `json:"item_serial"`
	ItemName      string    `json:"item_name"`
	IssuedTo      string    `json:"issued_to"` // section within the department
	Quantity      float64   `json:"quantity"`
	UnitOfMeasure string    `json:"unit_of_measure"`
	ItemCategory  string    `json:"item_category"`
	WeekLabel     string    `json:"week_label"`
	Reference     string    `json:"reference"`
	Department    string    `json:"department"`
	BatchNo       string    `json:"batch_no"`
	Store         string    `json:"store"`
	ReceivedBy    string    `json:"received_by"`
}

// DatasetStats summarizes the issuance history currently loaded.
type DatasetStats struct {
	Issuances   int       `json:"issuances"`
	Items       int       `json:"items"`
	Departments int       `json:"departments"`
	EarliestAt  time.Time `json:"earliest_at"`
	LatestAt    time.Time `json:"latest_at"`
}

// TransactionFilters narrows which issuances feed the aggregator.
type TransactionFilters struct {
	SinceYear  int    // 0 = all history
	Department string // empty = all departments
}

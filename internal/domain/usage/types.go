// Package usage computes historical consumption distributions for an
// ingredient across the departments (and sections) it was issued to.
//
// The output of Aggregate is the input to the allocator: a list of group
// shares, in percent, summing to exactly 100.
package usage

import (
	"errors"
	"time"
)

// Sentinel errors shared by the aggregation and allocation layers.
// Callers check these with errors.Is and map them to user-facing messages.
var (
	// ErrNoData means no historical transaction matched the identifier
	// (or the department filter left nothing). "Item not found", not a crash.
	ErrNoData = errors.New("no matching historical data")

	// ErrInvalidInput means the request itself was unusable: blank
	// identifier, bad group levels, or a non-positive quantity.
	ErrInvalidInput = errors.New("invalid input")
)

// GroupLevel selects a grouping field on Transaction.
type GroupLevel string

const (
	// LevelDepartment groups by the department the issuance was charged to.
	LevelDepartment GroupLevel = "department"

	// LevelSection groups by the section (the "issued to" unit) within a
	// department.
	LevelSection GroupLevel = "section"
)

// Transaction is one historical issuance event, already cleaned by the
// ingestion layer: quantity is positive and text fields are trimmed.
type Transaction struct {
	ItemSerial string
	ItemName   string
	Department string
	Section    string
	Quantity   float64
	IssuedAt   time.Time
}

// GroupKey identifies one bucket of the distribution. Section is empty when
// grouping by department only.
type GroupKey struct {
	Department string
	Section    string
}

// String renders the key for display: "Kitchen" or "Kitchen / Pastry".
func (k GroupKey) String() string {
	if k.Section == "" {
		return k.Department
	}
	if k.Department == "" {
		return k.Section
	}
	return k.Department + " / " + k.Section
}

// less orders keys lexicographically, department first. Used for
// deterministic tie-breaks.
func (k GroupKey) less(other GroupKey) bool {
	if k.Department != other.Department {
		return k.Department < other.Department
	}
	return k.Section < other.Section
}

// Entry is one group's share of historical usage, in percent.
type Entry struct {
	Key   GroupKey
	Share float64
}

// Distribution is the ordered output of Aggregate: entries sorted by
// descending share (ties by key), shares summing to exactly 100.
type Distribution []Entry

// TotalShare returns the sum of all shares. For any non-empty distribution
// returned by Aggregate this is 100 within floating-point tolerance.
func (d Distribution) TotalShare() float64 {
	var total float64
	for _, e := range d {
		total += e.Share
	}
	return total
}

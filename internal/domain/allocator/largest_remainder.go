// Package allocator converts a usage distribution into concrete quantities.
//
// Allocation uses the largest-remainder method: every group gets the floor
// of its ideal share, then the leftover whole units go one at a time to the
// groups with the biggest fractional remainders. The result always sums to
// the rounded available quantity — that reconciliation is the whole point.
package allocator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/brownsdata/ingredient-allocator/internal/domain/usage"
)

// MaxPrecision caps decimal places for fixed-precision allocation.
const MaxPrecision int32 = 3

// ErrSumMismatch indicates the reconciliation postcondition failed. This is
// an internal defect, not a condition callers are expected to handle.
var ErrSumMismatch = errors.New("allocation does not sum to requested quantity")

// Allocation is one group's slice of the available quantity.
type Allocation struct {
	Key      usage.GroupKey
	Share    float64
	Quantity decimal.Decimal
}

// Result contains the full allocation plan. Total always equals Target.
type Result struct {
	// Target is the available quantity rounded to the allocation precision;
	// the quantity the plan actually distributes.
	Target      decimal.Decimal
	Precision   int32
	Allocations []Allocation
	Total       decimal.Decimal
}

// Allocate distributes availableQuantity across the distribution in whole
// units. Fractional availability is rounded to the nearest whole unit first.
func Allocate(dist usage.Distribution, availableQuantity float64) (*Result, error) {
	return AllocateFixed(dist, availableQuantity, 0)
}

// AllocateFixed distributes availableQuantity in units of 10^-places, for
// ingredients issued by weight or volume rather than by count. places == 0
// is plain whole-unit allocation.
//
// Returns usage.ErrNoData for an empty distribution and usage.ErrInvalidInput
// for a non-positive quantity or an out-of-range precision.
func AllocateFixed(dist usage.Distribution, availableQuantity float64, places int32) (*Result, error) {
	if len(dist) == 0 {
		return nil, fmt.Errorf("%w: empty distribution", usage.ErrNoData)
	}
	if availableQuantity <= 0 {
		return nil, fmt.Errorf("%w: available quantity must be positive, got %v", usage.ErrInvalidInput, availableQuantity)
	}
	if places < 0 || places > MaxPrecision {
		return nil, fmt.Errorf("%w: precision %d out of range 0..%d", usage.ErrInvalidInput, places, MaxPrecision)
	}

	// Work in integer units of 10^-places so the exact-sum invariant is an
	// integer equality, immune to float drift.
	scale := math.Pow10(int(places))
	scaled := availableQuantity * scale
	targetUnits := int64(math.Round(scaled))

	type provisional struct {
		units     int64
		remainder float64
	}
	prov := make([]provisional, len(dist))
	var floorTotal int64
	for i, e := range dist {
		ideal := e.Share / 100 * scaled
		units := int64(math.Floor(ideal))
		prov[i] = provisional{units: units, remainder: ideal - float64(units)}
		floorTotal += units
	}

	shortfall := targetUnits - floorTotal
	if shortfall < 0 {
		// Only reachable through float error in the ideals; the floors can
		// never legitimately exceed the rounded target.
		shortfall = 0
	}

	// Hand out the leftover units by largest remainder, ties by bigger
	// share then by key. dist is already share-descending and key-ordered,
	// so a stable sort on remainder alone preserves both tie-breaks.
	order := make([]int, len(prov))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return prov[order[a]].remainder > prov[order[b]].remainder
	})
	for i := 0; shortfall > 0; i++ {
		prov[order[i%len(order)]].units++
		shortfall--
	}

	result := &Result{
		Target:      decimal.New(targetUnits, -places),
		Precision:   places,
		Allocations: make([]Allocation, len(dist)),
	}
	var totalUnits int64
	for i, p := range prov {
		result.Allocations[i] = Allocation{
			Key:      dist[i].Key,
			Share:    dist[i].Share,
			Quantity: decimal.New(p.units, -places),
		}
		totalUnits += p.units
	}
	result.Total = decimal.New(totalUnits, -places)

	if totalUnits != targetUnits {
		return nil, fmt.Errorf("%w: allocated %d units, wanted %d", ErrSumMismatch, totalUnits, targetUnits)
	}

	return result, nil
}

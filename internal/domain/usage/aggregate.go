package usage

import (
	"fmt"
	"sort"
	"strings"
)

// FilterAll is the sentinel department filter meaning "no restriction".
const FilterAll = "all"

// Aggregate computes the usage distribution for one ingredient.
//
// Identifier matching: an all-digit identifier is compared against the item
// serial with exact case-insensitive equality; anything else is matched
// against the item name by case-insensitive substring containment, so a
// lookup for "flour" finds "Bread Flour 50kg" as well as "Flour".
//
// Groups whose raw share falls below minSharePct are dropped as noise and
// their share redistributed across the rest. If that would drop everything,
// the single largest group is kept instead so small samples still produce a
// usable answer. departmentFilter restricts to one department before the
// threshold is applied; empty or "all" means no restriction.
//
// The input slice is never mutated. Returns ErrInvalidInput for a blank
// identifier or bad group levels, ErrNoData when nothing matches.
func Aggregate(transactions []Transaction, identifier string, levels []GroupLevel, minSharePct float64, departmentFilter string) (Distribution, error) {
	ident := strings.TrimSpace(identifier)
	if ident == "" {
		return nil, fmt.Errorf("%w: identifier is blank", ErrInvalidInput)
	}
	if err := validateLevels(levels); err != nil {
		return nil, err
	}
	if minSharePct < 0 {
		return nil, fmt.Errorf("%w: min share %.2f is negative", ErrInvalidInput, minSharePct)
	}

	matched := filterByIdentifier(transactions, ident)
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: no issuances for %q", ErrNoData, ident)
	}

	if dept := strings.TrimSpace(departmentFilter); dept != "" && !strings.EqualFold(dept, FilterAll) {
		matched = filterByDepartment(matched, dept)
		if len(matched) == 0 {
			return nil, fmt.Errorf("%w: no issuances for %q in department %q", ErrNoData, ident, dept)
		}
	}

	totals := make(map[GroupKey]float64)
	var grandTotal float64
	for _, tx := range matched {
		key := keyFor(tx, levels)
		totals[key] += tx.Quantity
		grandTotal += tx.Quantity
	}
	if grandTotal <= 0 {
		return nil, fmt.Errorf("%w: total recorded quantity for %q is zero", ErrNoData, ident)
	}

	raw := make(Distribution, 0, len(totals))
	for key, sum := range totals {
		raw = append(raw, Entry{Key: key, Share: sum / grandTotal * 100})
	}

	retained := raw[:0:0]
	for _, e := range raw {
		if e.Share >= minSharePct {
			retained = append(retained, e)
		}
	}
	if len(retained) == 0 {
		retained = Distribution{largest(raw)}
	}

	var retainedTotal float64
	for _, e := range retained {
		retainedTotal += e.Share
	}
	for i := range retained {
		retained[i].Share = retained[i].Share / retainedTotal * 100
	}

	sort.Slice(retained, func(i, j int) bool {
		if retained[i].Share != retained[j].Share {
			return retained[i].Share > retained[j].Share
		}
		return retained[i].Key.less(retained[j].Key)
	})

	return retained, nil
}

func validateLevels(levels []GroupLevel) error {
	if len(levels) == 0 || len(levels) > 2 {
		return fmt.Errorf("%w: need 1 or 2 group levels, got %d", ErrInvalidInput, len(levels))
	}
	seen := make(map[GroupLevel]bool, len(levels))
	for _, lvl := range levels {
		if lvl != LevelDepartment && lvl != LevelSection {
			return fmt.Errorf("%w: unknown group level %q", ErrInvalidInput, lvl)
		}
		if seen[lvl] {
			return fmt.Errorf("%w: duplicate group level %q", ErrInvalidInput, lvl)
		}
		seen[lvl] = true
	}
	return nil
}

// isSerial reports whether the identifier looks like an item serial code
// (digits only). Serials are matched exactly, names by containment.
func isSerial(identifier string) bool {
	for _, r := range identifier {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(identifier) > 0
}

func filterByIdentifier(transactions []Transaction, identifier string) []Transaction {
	var matched []Transaction
	if isSerial(identifier) {
		for _, tx := range transactions {
			if strings.EqualFold(strings.TrimSpace(tx.ItemSerial), identifier) {
				matched = append(matched, tx)
			}
		}
		return matched
	}
	needle := strings.ToLower(identifier)
	for _, tx := range transactions {
		if strings.Contains(strings.ToLower(tx.ItemName), needle) {
			matched = append(matched, tx)
		}
	}
	return matched
}

func filterByDepartment(transactions []Transaction, department string) []Transaction {
	var matched []Transaction
	for _, tx := range transactions {
		if strings.EqualFold(strings.TrimSpace(tx.Department), department) {
			matched = append(matched, tx)
		}
	}
	return matched
}

func keyFor(tx Transaction, levels []GroupLevel) GroupKey {
	var key GroupKey
	for _, lvl := range levels {
		switch lvl {
		case LevelDepartment:
			key.Department = strings.TrimSpace(tx.Department)
		case LevelSection:
			key.Section = strings.TrimSpace(tx.Section)
		}
	}
	return key
}

// largest returns the entry with the biggest share, ties broken by smaller
// key so the fallback is deterministic.
func largest(entries Distribution) Entry {
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Share > best.Share || (e.Share == best.Share && e.Key.less(best.Key)) {
			best = e
		}
	}
	return best
}

package dto

// AllocationRequest is the body of POST /api/allocations.
type AllocationRequest struct {
	// Item is the ingredient name or serial code.
	Item string `json:"item"`

	// AvailableQuantity is the amount to distribute across departments.
	AvailableQuantity float64 `json:"available_quantity"`

	// Department optionally restricts to one department ("" or "all" =
	// every department).
	Department string `json:"department,omitempty"`

	// Levels is the grouping hierarchy: "department", "section", or both
	// in order. Defaults to ["department"].
	Levels []string `json:"levels,omitempty"`

	// MinSharePct overrides the configured significance threshold.
	MinSharePct *float64 `json:"min_share_pct,omitempty"`

	// Precision is the number of decimal places to allocate at (0-3).
	Precision int32 `json:"precision,omitempty"`
}

package dto

import "time"

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ShareResponse is one group's slice of a usage distribution.
type ShareResponse struct {
	Department string  `json:"department"`
	Section    string  `json:"section,omitempty"`
	SharePct   float64 `json:"share_pct"`
}

// UsageResponse is the GET /api/usage payload.
type UsageResponse struct {
	Item   string          `json:"item"`
	Shares []ShareResponse `json:"shares"`
}

// AllocationLineResponse is one group's allocated quantity. Quantity is a
// decimal string so fixed-precision amounts survive JSON round-trips intact.
type AllocationLineResponse struct {
	Department string  `json:"department"`
	Section    string  `json:"section,omitempty"`
	SharePct   float64 `json:"share_pct"`
	Quantity   string  `json:"quantity"`
}

// AllocationResponse is the POST /api/allocations payload.
type AllocationResponse struct {
	Item        string                   `json:"item"`
	Target      string                   `json:"target"`
	Total       string                   `json:"total"`
	Precision   int32                    `json:"precision"`
	Allocations []AllocationLineResponse `json:"allocations"`
}

// ItemsResponse is the GET /api/items payload.
type ItemsResponse struct {
	Items []string `json:"items"`
	Query string   `json:"query,omitempty"`
	Count int      `json:"count"`
}

// StatsResponse is the GET /api/stats payload.
type StatsResponse struct {
	Issuances   int        `json:"issuances"`
	Items       int        `json:"items"`
	Departments int        `json:"departments"`
	EarliestAt  *time.Time `json:"earliest_at,omitempty"`
	LatestAt    *time.Time `json:"latest_at,omitempty"`
}

// Package service wires the issuance history to the allocation engine:
// load transactions, compute the usage distribution, convert it into an
// allocation plan.
package service

import (
	"fmt"
	"log/slog"

	"github.com/brownsdata/ingredient-allocator/internal/domain/allocator"
	"github.com/brownsdata/ingredient-allocator/internal/domain/usage"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/config"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/storage"
)

// PlanRequest describes one allocation request.
type PlanRequest struct {
	// Identifier is the item name or serial code to look up.
	Identifier string

	// AvailableQuantity is the amount to distribute.
	AvailableQuantity float64

	// Department restricts history to one department before proportions
	// are computed. Empty or "all" means every department.
	Department string

	// Levels selects the grouping hierarchy. Defaults to department only.
	Levels []usage.GroupLevel

	// MinSharePct overrides the configured significance threshold when
	// non-nil.
	MinSharePct *float64

	// Precision is the number of decimal places to allocate at. Zero means
	// whole units.
	Precision int32
}

// ProportionsRequest describes a distribution-only lookup.
type ProportionsRequest struct {
	Identifier  string
	Department  string
	Levels      []usage.GroupLevel
	MinSharePct *float64
}

// AllocationService answers allocation and proportion requests against the
// stored issuance history. Stateless between calls; safe for concurrent use.
type AllocationService struct {
	repo   storage.Repository
	cfg    config.AllocationConfig
	logger *slog.Logger
}

// NewAllocationService creates a new allocation service.
func NewAllocationService(repo storage.Repository, cfg config.AllocationConfig, logger *slog.Logger) *AllocationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AllocationService{repo: repo, cfg: cfg, logger: logger}
}

// Plan computes the full allocation plan for a request.
func (s *AllocationService) Plan(req PlanRequest) (*allocator.Result, error) {
	dist, err := s.distribution(req.Identifier, req.Department, req.Levels, req.MinSharePct)
	if err != nil {
		return nil, err
	}

	result, err := allocator.AllocateFixed(dist, req.AvailableQuantity, req.Precision)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("allocation planned",
		"item", req.Identifier,
		"quantity", req.AvailableQuantity,
		"groups", len(result.Allocations))
	return result, nil
}

// Proportions computes the usage distribution without allocating anything.
func (s *AllocationService) Proportions(req ProportionsRequest) (usage.Distribution, error) {
	return s.distribution(req.Identifier, req.Department, req.Levels, req.MinSharePct)
}

// Items returns distinct item names matching query for lookup UIs.
func (s *AllocationService) Items(query string, limit int) ([]string, error) {
	return s.repo.ListItemNames(query, limit)
}

// Stats returns statistics about the loaded issuance history.
func (s *AllocationService) Stats() (*storage.DatasetStats, error) {
	return s.repo.Stats()
}

func (s *AllocationService) distribution(identifier, department string, levels []usage.GroupLevel, minShare *float64) (usage.Distribution, error) {
	threshold := s.cfg.MinSharePct
	if minShare != nil {
		threshold = *minShare
	}
	if len(levels) == 0 {
		levels = []usage.GroupLevel{usage.LevelDepartment}
	}

	// The department restriction happens inside Aggregate, after identifier
	// matching, so a filtered-out department reads as "no data here" rather
	// than "unknown item".
	transactions, err := s.repo.ListTransactions(storage.TransactionFilters{
		SinceYear: s.cfg.MinYear,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load issuance history: %w", err)
	}

	return usage.Aggregate(transactions, identifier, levels, threshold, department)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brownsdata/ingredient-allocator/internal/api/dto"
	"github.com/brownsdata/ingredient-allocator/internal/application/service"
	"github.com/brownsdata/ingredient-allocator/internal/domain/usage"
)

// AllocationsHandler computes allocation plans.
type AllocationsHandler struct {
	*Base
}

// NewAllocationsHandler creates a new allocations handler.
func NewAllocationsHandler(svc *service.AllocationService) *AllocationsHandler {
	return &AllocationsHandler{Base: NewBase(svc)}
}

// Create handles POST /api/allocations.
func (h *AllocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return
	}

	var levels []usage.GroupLevel
	for _, lvl := range req.Levels {
		levels = append(levels, usage.GroupLevel(lvl))
	}

	result, err := h.svc.Plan(service.PlanRequest{
		Identifier:        req.Item,
		AvailableQuantity: req.AvailableQuantity,
		Department:        req.Department,
		Levels:            levels,
		MinSharePct:       req.MinSharePct,
		Precision:         req.Precision,
	})
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	response := dto.AllocationResponse{
		Item:        req.Item,
		Target:      result.Target.String(),
		Total:       result.Total.String(),
		Precision:   result.Precision,
		Allocations: make([]dto.AllocationLineResponse, 0, len(result.Allocations)),
	}
	for _, a := range result.Allocations {
		response.Allocations = append(response.Allocations, dto.AllocationLineResponse{
			Department: a.Key.Department,
			Section:    a.Key.Section,
			SharePct:   a.Share,
			Quantity:   a.Quantity.String(),
		})
	}

	h.WriteJSON(w, http.StatusOK, response)
}

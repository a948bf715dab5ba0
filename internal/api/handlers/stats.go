package handlers

import (
	"net/http"

	"github.com/brownsdata/ingredient-allocator/internal/api/dto"
	"github.com/brownsdata/ingredient-allocator/internal/application/service"
)

// StatsHandler serves dataset statistics.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(svc *service.AllocationService) *StatsHandler {
	return &StatsHandler{Base: NewBase(svc)}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.StatsResponse{
		Issuances:   stats.Issuances,
		Items:       stats.Items,
		Departments: stats.Departments,
	}
	if stats.Issuances > 0 {
		earliest, latest := stats.EarliestAt, stats.LatestAt
		response.EarliestAt = &earliest
		response.LatestAt = &latest
	}

	h.WriteJSON(w, http.StatusOK, response)
}

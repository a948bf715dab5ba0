package handlers

import (
	"net/http"

	"github.com/brownsdata/ingredient-allocator/internal/api/dto"
	"github.com/brownsdata/ingredient-allocator/internal/application/service"
)

// UsageHandler serves usage distributions without allocating anything.
type UsageHandler struct {
	*Base
}

// NewUsageHandler creates a new usage handler.
func NewUsageHandler(svc *service.AllocationService) *UsageHandler {
	return &UsageHandler{Base: NewBase(svc)}
}

// Get handles GET /api/usage?item=&levels=&min_share=&department=
func (h *UsageHandler) Get(w http.ResponseWriter, r *http.Request) {
	item := r.URL.Query().Get("item")
	if item == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("query parameter 'item' is required"))
		return
	}

	dist, err := h.svc.Proportions(service.ProportionsRequest{
		Identifier:  item,
		Department:  r.URL.Query().Get("department"),
		Levels:      ParseLevels(r.URL.Query().Get("levels")),
		MinSharePct: ParseFloatParam(r, "min_share"),
	})
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	response := dto.UsageResponse{
		Item:   item,
		Shares: make([]dto.ShareResponse, 0, len(dist)),
	}
	for _, entry := range dist {
		response.Shares = append(response.Shares, dto.ShareResponse{
			Department: entry.Key.Department,
			Section:    entry.Key.Section,
			SharePct:   entry.Share,
		})
	}

	h.WriteJSON(w, http.StatusOK, response)
}

package handlers

import (
	"net/http"

	"github.com/brownsdata/ingredient-allocator/internal/api/dto"
	"github.com/brownsdata/ingredient-allocator/internal/application/service"
)

// ItemsHandler handles item lookup requests.
type ItemsHandler struct {
	*Base
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(svc *service.AllocationService) *ItemsHandler {
	return &ItemsHandler{Base: NewBase(svc)}
}

// List handles GET /api/items - lists distinct item names, optionally
// filtered by a substring query. This feeds the lookup box in the dashboard.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := ParseIntParam(r, "limit", 50)

	names, err := h.svc.Items(query, limit)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	if names == nil {
		names = []string{}
	}
	h.WriteJSON(w, http.StatusOK, dto.ItemsResponse{
		Items: names,
		Query: query,
		Count: len(names),
	})
}

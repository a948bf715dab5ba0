package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/brownsdata/ingredient-allocator/internal/api/dto"
	"github.com/brownsdata/ingredient-allocator/internal/application/service"
	"github.com/brownsdata/ingredient-allocator/internal/domain/usage"
)

// Base provides shared functionality for all handlers.
type Base struct {
	svc *service.AllocationService
}

// NewBase creates a new base handler with the given service.
func NewBase(svc *service.AllocationService) *Base {
	return &Base{svc: svc}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// WriteDomainError maps engine sentinels to HTTP responses: no data is a
// 404 ("item not found"), invalid input a 400, anything else a 500.
func (b *Base) WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usage.ErrNoData):
		b.WriteError(w, http.StatusNotFound, dto.NotFoundError("item not found in historical data"))
	case errors.Is(err, usage.ErrInvalidInput):
		b.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
	default:
		b.WriteError(w, http.StatusInternalServerError, dto.InternalError())
	}
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseFloatParam parses a float query parameter, nil when absent or bad.
func ParseFloatParam(r *http.Request, name string) *float64 {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// ParseLevels converts a comma-separated levels value ("department,section")
// into group levels. Empty input returns nil so the service default applies.
func ParseLevels(val string) []usage.GroupLevel {
	if val == "" {
		return nil
	}
	var levels []usage.GroupLevel
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			levels = append(levels, usage.GroupLevel(strings.ToLower(trimmed)))
		}
	}
	return levels
}

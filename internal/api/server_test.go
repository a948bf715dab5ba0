package api_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownsdata/ingredient-allocator/internal/api"
	"github.com/brownsdata/ingredient-allocator/internal/api/dto"
	"github.com/brownsdata/ingredient-allocator/internal/application/service"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/config"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/storage"
)

func newTestServer(t *testing.T) (*api.Server, *storage.MockRepository) {
	t.Helper()
	repo := storage.NewMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := service.NewAllocationService(repo, config.AllocationConfig{MinSharePct: 1.0, MinYear: 2024}, logger)
	server := api.NewServer(api.DefaultConfig(), svc, logger)
	return server, repo
}

func seedHistory(repo *storage.MockRepository) {
	issuedAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for dept, qty := range map[string]float64{"Pizza": 60, "Salads": 30, "Grill": 10} {
		repo.AddIssuance(storage.IssuanceRecord{
			IssuedAt:   issuedAt,
			ItemSerial: "1001",
			ItemName:   "Mozzarella",
			Department: dept,
			Quantity:   qty,
		})
	}
}

func doRequest(t *testing.T, server *api.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "ok", response.Status)
}

func TestServer_UsageEndpoint(t *testing.T) {
	t.Run("returns distribution", func(t *testing.T) {
		server, repo := newTestServer(t)
		seedHistory(repo)

		rec := doRequest(t, server, http.MethodGet, "/api/usage?item=Mozzarella", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.UsageResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Len(t, response.Shares, 3)
		assert.Equal(t, "Pizza", response.Shares[0].Department)
		assert.InDelta(t, 60.0, response.Shares[0].SharePct, 1e-9)

		var total float64
		for _, s := range response.Shares {
			total += s.SharePct
		}
		assert.InDelta(t, 100.0, total, 1e-6)
	})

	t.Run("missing item parameter", func(t *testing.T) {
		server, _ := newTestServer(t)
		rec := doRequest(t, server, http.MethodGet, "/api/usage", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown item is 404", func(t *testing.T) {
		server, repo := newTestServer(t)
		seedHistory(repo)
		rec := doRequest(t, server, http.MethodGet, "/api/usage?item=Truffles", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeNotFound, apiErr.Code)
	})
}

func TestServer_AllocationsEndpoint(t *testing.T) {
	t.Run("computes plan", func(t *testing.T) {
		server, repo := newTestServer(t)
		seedHistory(repo)

		rec := doRequest(t, server, http.MethodPost, "/api/allocations",
			`{"item":"Mozzarella","available_quantity":7}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.AllocationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "7", response.Total)
		require.Len(t, response.Allocations, 3)
		assert.Equal(t, "Pizza", response.Allocations[0].Department)
		assert.Equal(t, "4", response.Allocations[0].Quantity)
		assert.Equal(t, "1", response.Allocations[2].Quantity)
	})

	t.Run("fixed precision plan", func(t *testing.T) {
		server, repo := newTestServer(t)
		seedHistory(repo)

		rec := doRequest(t, server, http.MethodPost, "/api/allocations",
			`{"item":"1001","available_quantity":2.5,"precision":1}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.AllocationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "2.5", response.Total)
	})

	t.Run("zero quantity is 400", func(t *testing.T) {
		server, repo := newTestServer(t)
		seedHistory(repo)

		rec := doRequest(t, server, http.MethodPost, "/api/allocations",
			`{"item":"Mozzarella","available_quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown item is 404", func(t *testing.T) {
		server, repo := newTestServer(t)
		seedHistory(repo)

		rec := doRequest(t, server, http.MethodPost, "/api/allocations",
			`{"item":"Truffles","available_quantity":5}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		server, _ := newTestServer(t)
		rec := doRequest(t, server, http.MethodPost, "/api/allocations", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_ItemsEndpoint(t *testing.T) {
	server, repo := newTestServer(t)
	seedHistory(repo)
	repo.AddIssuance(storage.IssuanceRecord{
		IssuedAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ItemName:   "Cheddar",
		Department: "Grill",
		Quantity:   5,
	})

	rec := doRequest(t, server, http.MethodGet, "/api/items?q=mozza", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.ItemsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []string{"Mozzarella"}, response.Items)
	assert.Equal(t, 1, response.Count)
}

func TestServer_StatsEndpoint(t *testing.T) {
	server, repo := newTestServer(t)
	seedHistory(repo)

	rec := doRequest(t, server, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.StatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 3, response.Issuances)
	assert.Equal(t, 1, response.Items)
	assert.Equal(t, 3, response.Departments)
	require.NotNil(t, response.EarliestAt)
}

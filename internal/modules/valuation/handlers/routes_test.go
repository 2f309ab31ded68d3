package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	handler := NewHandler(nil, 100, 10, zerolog.Nop())

	router := chi.NewRouter()
	require.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")

	// An empty body fails decoding with 400, which still proves the route exists
	testCases := []struct {
		method string
		path   string
		name   string
	}{
		{"POST", "/api/valuation/calculate", "Calculate"},
		{"POST", "/api/valuation/batch", "Batch"},
		{"POST", "/api/valuation/models/constant", "Model"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)
			assert.NotEqual(t, http.StatusNotFound, rec.Code, "Route %s %s should be registered", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestRegisterRoutes_RoutePrefix(t *testing.T) {
	handler := NewHandler(nil, 100, 10, zerolog.Nop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest("POST", "/calculate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code, "Route without /api/valuation prefix should return 404")
}

func TestRegisterRoutes_GetNotAllowed(t *testing.T) {
	handler := NewHandler(nil, 100, 10, zerolog.Nop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest("GET", "/api/valuation/calculate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/escrow-api/models"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Delete("/api/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(routeNotFound)

	return router
}

func TestRouteNotFound_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "registered GET passes through",
			method:         http.MethodGet,
			path:           "/api/jobs",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "registered POST passes through",
			method:         http.MethodPost,
			path:           "/api/jobs",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "parameterised DELETE passes through",
			method:         http.MethodDelete,
			path:           "/api/jobs/7",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "known path with unhandled method",
			method:         http.MethodPatch,
			path:           "/api/jobs",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "parameterised path with unhandled method",
			method:         http.MethodGet,
			path:           "/api/jobs/7",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown path",
			method:         http.MethodGet,
			path:           "/api/unknown",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestRouteNotFound_JSONBody(t *testing.T) {
	router := buildRouter()

	req := httptest.NewRequest(http.MethodPut, "/api/jobs", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body models.MessageResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Route not found", body.Message)
}

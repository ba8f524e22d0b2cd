// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func methodRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/api/catalog", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("catalog"))
	})
	router.Get("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Delete("/api/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))
	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	router := methodRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/catalog", http.StatusOK},
		{http.MethodGet, "/api/transactions", http.StatusOK},
		{http.MethodPost, "/api/transactions", http.StatusCreated},
		{http.MethodDelete, "/api/transactions/4", http.StatusNoContent},

		{http.MethodPost, "/api/catalog", http.StatusNotFound},
		{http.MethodPut, "/api/transactions", http.StatusNotFound},
		{http.MethodGet, "/api/transactions/4", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

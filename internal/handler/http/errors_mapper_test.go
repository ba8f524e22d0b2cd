package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-family-finance/internal/service"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("invalid transaction draft: %w", fmt.Errorf("%w: %w", validators.ErrValidation, validators.ErrNonPositiveAmount)), http.StatusBadRequest},
		{"empty body", fmt.Errorf("%w: %w", ErrInvalidJSON, utils.ErrEmptyBody), http.StatusBadRequest},
		{"bad header", utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
		{"expired token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{"inactive", service.ErrUserInactive, http.StatusForbidden},
		{"not owner", fmt.Errorf("update: %w", store.ErrPermissionDenied), http.StatusForbidden},
		{"missing row", store.ErrTransactionNotFound, http.StatusNotFound},
		{"duplicate user", fmt.Errorf("%w: %w", store.ErrUsernameAlreadyExists, errors.New("23505")), http.StatusConflict},
		{"sql failure", fmt.Errorf("%w: %w", store.ErrExecutingQuery, errors.New("conn reset")), http.StatusInternalServerError},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteError_HidesServerDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	writeError(rec, req, "test", fmt.Errorf("%w: password=hunter2", store.ErrExecutingQuery))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeError(t, rec))

	rec = httptest.NewRecorder()
	writeError(rec, req, "test", store.ErrTransactionNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, store.ErrTransactionNotFound.Error(), decodeError(t, rec))
}

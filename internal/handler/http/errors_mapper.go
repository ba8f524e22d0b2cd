package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/service"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/internal/validators"
	"github.com/MKhiriev/go-family-finance/models"
)

var errorStatusMap = map[error]int{
	validators.ErrValidation: http.StatusBadRequest,
	service.ErrInvalidPeriod: http.StatusBadRequest,
	ErrInvalidJSON:           http.StatusBadRequest,
	ErrInvalidPathID:         http.StatusBadRequest,
	ErrInvalidQuery:          http.StatusBadRequest,
	utils.ErrEmptyBody:       http.StatusBadRequest,

	service.ErrInvalidCredentials:       http.StatusUnauthorized,
	service.ErrWrongPassword:            http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:  http.StatusUnauthorized,
	ErrEmptyAuthorizationHeader:         http.StatusUnauthorized,
	utils.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrUserContextMissing:               http.StatusUnauthorized,

	service.ErrUserInactive:     http.StatusForbidden,
	service.ErrAdminOnly:        http.StatusForbidden,
	service.ErrSelfModification: http.StatusForbidden,
	store.ErrPermissionDenied:   http.StatusForbidden,

	store.ErrTransactionNotFound: http.StatusNotFound,
	store.ErrNoUserWasFound:      http.StatusNotFound,

	store.ErrUsernameAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its mapped status. Server-side
// failures are reported with the generic status text only.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		event = event.Int64("user_id", userID)
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-family-finance/internal/service"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The token only names the user. Role, group and the active flag are loaded
// from the store on every request, so an admin's change applies to the very
// next call instead of at token expiry. The resolved identity is stored in
// the request context with [utils.WithUserContext].
//
// The middleware rejects requests with 401 Unauthorized when the
// "Authorization" header is missing or malformed, when the token fails
// validation and when its user no longer exists. Deactivated users get
// 403 Forbidden.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		user, err := h.services.AuthService.CurrentUser(ctx, token.UserID)
		if errors.Is(err, store.ErrNoUserWasFound) {
			writeError(w, r, "*Handler.auth", service.ErrTokenIsExpiredOrInvalid)
			return
		}
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}
		if !user.Active {
			writeError(w, r, "*Handler.auth", service.ErrUserInactive)
			return
		}

		ctx = utils.WithUserContext(ctx, user.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly lets through callers with the admin role. It must run after auth.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uc, ok := utils.GetUserContext(r.Context())
		if !ok {
			writeError(w, r, "*Handler.adminOnly", ErrUserContextMissing)
			return
		}
		if !uc.IsAdmin() {
			writeError(w, r, "*Handler.adminOnly", service.ErrAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}

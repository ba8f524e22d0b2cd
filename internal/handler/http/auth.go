package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := utils.DecodeJSON(r.Body, &credentials); err != nil {
		writeError(w, r, "*Handler.login", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	user, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	log.Debug().Int64("user_id", user.ID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{Token: token.SignedString, User: user}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	uc, ok := utils.GetUserContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.me", ErrUserContextMissing)
		return
	}

	user, err := h.services.AuthService.CurrentUser(r.Context(), uc.ID)
	if err != nil {
		writeError(w, r, "*Handler.me", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	uc, ok := utils.GetUserContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.changePassword", ErrUserContextMissing)
		return
	}

	var change models.PasswordChange
	if err := utils.DecodeJSON(r.Body, &change); err != nil {
		writeError(w, r, "*Handler.changePassword", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err := h.services.AuthService.ChangePassword(r.Context(), uc, change); err != nil {
		writeError(w, r, "*Handler.changePassword", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

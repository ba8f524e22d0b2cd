package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/models"
)

const defaultAccessLogLimit = 100

// Every handler below runs behind auth and adminOnly, so the user context is
// always present; the service re-checks the role anyway.

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserContext(r.Context())

	users, err := h.services.UserService.ListUsers(r.Context(), admin)
	if err != nil {
		writeError(w, r, "*Handler.listUsers", err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserContext(r.Context())

	var user models.NewUser
	if err := utils.DecodeJSON(r.Body, &user); err != nil {
		writeError(w, r, "*Handler.createUser", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	created, err := h.services.UserService.CreateUser(r.Context(), admin, user)
	if err != nil {
		writeError(w, r, "*Handler.createUser", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.setUserStatus", err)
		return
	}

	var change models.StatusChange
	if err = utils.DecodeJSON(r.Body, &change); err != nil {
		writeError(w, r, "*Handler.setUserStatus", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err = h.services.UserService.SetActive(r.Context(), admin, id, change.Active); err != nil {
		writeError(w, r, "*Handler.setUserStatus", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setUserRole(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.setUserRole", err)
		return
	}

	var change models.RoleChange
	if err = utils.DecodeJSON(r.Body, &change); err != nil {
		writeError(w, r, "*Handler.setUserRole", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err = h.services.UserService.SetRole(r.Context(), admin, id, change.Role); err != nil {
		writeError(w, r, "*Handler.setUserRole", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setUserGroup(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.setUserGroup", err)
		return
	}

	var change models.GroupChange
	if err = utils.DecodeJSON(r.Body, &change); err != nil {
		writeError(w, r, "*Handler.setUserGroup", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err = h.services.UserService.SetGroup(r.Context(), admin, id, change); err != nil {
		writeError(w, r, "*Handler.setUserGroup", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserContext(r.Context())

	stats, err := h.services.UserService.Stats(r.Context(), admin)
	if err != nil {
		writeError(w, r, "*Handler.stats", err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) accessLogs(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserContext(r.Context())

	limit, err := limitParam(r, defaultAccessLogLimit)
	if err != nil {
		writeError(w, r, "*Handler.accessLogs", err)
		return
	}

	logs, err := h.services.UserService.AccessLogs(r.Context(), admin, limit)
	if err != nil {
		writeError(w, r, "*Handler.accessLogs", err)
		return
	}

	utils.WriteJSON(w, logs, http.StatusOK)
}

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/models"
)

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	uc, ok := utils.GetUserContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.listTransactions", ErrUserContextMissing)
		return
	}

	filter, err := transactionFilter(r)
	if err != nil {
		writeError(w, r, "*Handler.listTransactions", err)
		return
	}

	transactions, err := h.services.TransactionService.List(r.Context(), uc, filter)
	if err != nil {
		writeError(w, r, "*Handler.listTransactions", err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	utils.WriteJSON(w, transactions, http.StatusOK)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	uc, ok := utils.GetUserContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.createTransaction", ErrUserContextMissing)
		return
	}

	var draft models.TransactionDraft
	if err := utils.DecodeJSON(r.Body, &draft); err != nil {
		writeError(w, r, "*Handler.createTransaction", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	if draft.Mode == "" {
		draft.Mode = models.PaymentSingle
	}

	saved, err := h.services.TransactionService.Create(r.Context(), uc, draft)
	if err != nil {
		writeError(w, r, "*Handler.createTransaction", err)
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	uc, ok := utils.GetUserContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.updateTransaction", ErrUserContextMissing)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.updateTransaction", err)
		return
	}

	var patch models.TransactionPatch
	if err = utils.DecodeJSON(r.Body, &patch); err != nil {
		writeError(w, r, "*Handler.updateTransaction", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	updated, err := h.services.TransactionService.Update(r.Context(), uc, id, patch)
	if err != nil {
		writeError(w, r, "*Handler.updateTransaction", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	uc, ok := utils.GetUserContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.deleteTransaction", ErrUserContextMissing)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteTransaction", err)
		return
	}

	if err = h.services.TransactionService.Delete(r.Context(), uc, id); err != nil {
		writeError(w, r, "*Handler.deleteTransaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sweepRecurrences runs the recurrence sweep for the caller: every owner for
// an admin, the caller's own templates otherwise.
func (h *Handler) sweepRecurrences(w http.ResponseWriter, r *http.Request) {
	uc, ok := utils.GetUserContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.sweepRecurrences", ErrUserContextMissing)
		return
	}

	created, err := h.services.RecurrenceService.Sweep(r.Context(), &uc)
	if err != nil {
		writeError(w, r, "*Handler.sweepRecurrences", err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", uc.ID).Int("created", created).Msg("manual recurrence sweep")
	utils.WriteJSON(w, models.SweepResult{Created: created}, http.StatusOK)
}

func (h *Handler) monthlySummary(w http.ResponseWriter, r *http.Request) {
	uc, ok := utils.GetUserContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.monthlySummary", ErrUserContextMissing)
		return
	}

	summary, err := h.services.TransactionService.MonthlySummary(r.Context(), uc, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, "*Handler.monthlySummary", err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.TransactionService.Catalog(r.Context()), http.StatusOK)
}

package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-family-finance/models"
	"github.com/go-chi/chi/v5"
)

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPathID
	}
	return id, nil
}

// transactionFilter reads from, to (YYYY-MM-DD), category and q.
func transactionFilter(r *http.Request) (models.TransactionFilter, error) {
	query := r.URL.Query()

	var filter models.TransactionFilter
	if from := query.Get("from"); from != "" {
		d, err := models.ParseDate(from)
		if err != nil {
			return filter, fmt.Errorf("%w: from: %w", ErrInvalidQuery, err)
		}
		filter.From = d
	}
	if to := query.Get("to"); to != "" {
		d, err := models.ParseDate(to)
		if err != nil {
			return filter, fmt.Errorf("%w: to: %w", ErrInvalidQuery, err)
		}
		filter.To = d
	}
	filter.Category = strings.TrimSpace(query.Get("category"))
	filter.Search = strings.TrimSpace(query.Get("q"))

	return filter, nil
}

func limitParam(r *http.Request, fallback uint64) (uint64, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || limit == 0 {
		return 0, fmt.Errorf("%w: limit", ErrInvalidQuery)
	}
	return limit, nil
}

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// A missing scheme in cfg.HTTPAddress defaults to http://.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login prefers the Authorization response header and falls back to the
// token in the JSON body.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	var result models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&result).
		Post("/api/user/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		if result.Token == "" {
			return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
		}
		token = result.Token
	}

	h.SetToken(token)
	h.logger.Debug().Str("username", result.User.Username).Msg("logged in")

	return result.User, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).SetResult(&user).Get("/api/user/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	return user, mapHTTPError(resp)
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	resp, err := h.authedRequest(ctx).SetBody(change).Put("/api/user/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	req := h.authedRequest(ctx)
	if !filter.From.IsZero() {
		req.SetQueryParam("from", filter.From.String())
	}
	if !filter.To.IsZero() {
		req.SetQueryParam("to", filter.To.String())
	}
	if filter.Category != "" {
		req.SetQueryParam("category", filter.Category)
	}
	if filter.Search != "" {
		req.SetQueryParam("q", filter.Search)
	}

	var transactions []models.Transaction
	resp, err := req.SetResult(&transactions).Get("/api/transactions")
	if err != nil {
		return nil, fmt.Errorf("list transactions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (h *httpServerAdapter) CreateTransaction(ctx context.Context, draft models.TransactionDraft) ([]models.Transaction, error) {
	var saved []models.Transaction
	resp, err := h.authedRequest(ctx).SetBody(draft).SetResult(&saved).Post("/api/transactions")
	if err != nil {
		return nil, fmt.Errorf("create transaction request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return saved, nil
}

func (h *httpServerAdapter) UpdateTransaction(ctx context.Context, id int64, patch models.TransactionPatch) (models.Transaction, error) {
	var updated models.Transaction
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(patch).
		SetResult(&updated).
		Patch("/api/transactions/{id}")
	if err != nil {
		return models.Transaction{}, fmt.Errorf("update transaction request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Transaction{}, err
	}
	return updated, nil
}

func (h *httpServerAdapter) DeleteTransaction(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/api/transactions/{id}")
	if err != nil {
		return fmt.Errorf("delete transaction request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) SweepRecurrences(ctx context.Context) (models.SweepResult, error) {
	var result models.SweepResult
	resp, err := h.authedRequest(ctx).SetResult(&result).Post("/api/transactions/recurrences/sweep")
	if err != nil {
		return models.SweepResult{}, fmt.Errorf("sweep request: %w", err)
	}
	return result, mapHTTPError(resp)
}

func (h *httpServerAdapter) MonthlySummary(ctx context.Context, period string) (models.MonthlySummary, error) {
	req := h.authedRequest(ctx)
	if period != "" {
		req.SetQueryParam("month", period)
	}

	var summary models.MonthlySummary
	resp, err := req.SetResult(&summary).Get("/api/summary/monthly")
	if err != nil {
		return models.MonthlySummary{}, fmt.Errorf("monthly summary request: %w", err)
	}
	return summary, mapHTTPError(resp)
}

func (h *httpServerAdapter) Catalog(ctx context.Context) (models.Catalog, error) {
	var catalog models.Catalog
	resp, err := h.authedRequest(ctx).SetResult(&catalog).Get("/api/catalog")
	if err != nil {
		return models.Catalog{}, fmt.Errorf("catalog request: %w", err)
	}
	return catalog, mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).SetHeader("Accept", "text/plain").Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	resp, err := h.authedRequest(ctx).SetResult(&users).Get("/api/admin/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return users, nil
}

func (h *httpServerAdapter) CreateUser(ctx context.Context, user models.NewUser) (models.User, error) {
	var created models.User
	resp, err := h.authedRequest(ctx).SetBody(user).SetResult(&created).Post("/api/admin/users")
	if err != nil {
		return models.User{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	return created, nil
}

func (h *httpServerAdapter) SetUserActive(ctx context.Context, userID int64, active bool) error {
	return h.patchUser(ctx, userID, "status", models.StatusChange{Active: active})
}

func (h *httpServerAdapter) SetUserRole(ctx context.Context, userID int64, role models.Role) error {
	return h.patchUser(ctx, userID, "role", models.RoleChange{Role: role})
}

func (h *httpServerAdapter) SetUserGroup(ctx context.Context, userID int64, change models.GroupChange) error {
	return h.patchUser(ctx, userID, "group", change)
}

func (h *httpServerAdapter) patchUser(ctx context.Context, userID int64, field string, body any) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"id": strconv.FormatInt(userID, 10), "field": field}).
		SetBody(body).
		Patch("/api/admin/users/{id}/{field}")
	if err != nil {
		return fmt.Errorf("set user %s request: %w", field, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Stats(ctx context.Context) (models.SystemStats, error) {
	var stats models.SystemStats
	resp, err := h.authedRequest(ctx).SetResult(&stats).Get("/api/admin/stats")
	if err != nil {
		return models.SystemStats{}, fmt.Errorf("stats request: %w", err)
	}
	return stats, mapHTTPError(resp)
}

func (h *httpServerAdapter) AccessLogs(ctx context.Context, limit uint64) ([]models.AccessLog, error) {
	req := h.authedRequest(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(limit, 10))
	}

	var logs []models.AccessLog
	resp, err := req.SetResult(&logs).Get("/api/admin/logs")
	if err != nil {
		return nil, fmt.Errorf("access logs request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return logs, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

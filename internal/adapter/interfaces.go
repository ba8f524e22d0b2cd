// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport to the finance server.
//
// [ServerAdapter] decouples the command-line client from the REST API. The
// package ships an HTTP implementation ([NewHTTPServerAdapter]) built on
// resty.
//
// Non-2xx responses are mapped by mapHTTPError to the sentinels in
// errors.go so that callers can use [errors.Is] (e.g. [ErrForbidden] for
// 403, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-family-finance/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to the finance server on behalf of one logged-in user.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request. Login calls it on success.
	SetToken(token string)

	// Token returns the stored bearer token, or "" before login.
	Token() string

	// Login authenticates with username and password, stores the issued
	// token and returns the logged-in user.
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	Me(ctx context.Context) (models.User, error)
	ChangePassword(ctx context.Context, change models.PasswordChange) error

	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	// CreateTransaction returns every stored row: one for single payments,
	// one per installment, or the recurring template.
	CreateTransaction(ctx context.Context, draft models.TransactionDraft) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, patch models.TransactionPatch) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	SweepRecurrences(ctx context.Context) (models.SweepResult, error)
	MonthlySummary(ctx context.Context, period string) (models.MonthlySummary, error)
	Catalog(ctx context.Context) (models.Catalog, error)
	Version(ctx context.Context) (string, error)

	// Admin operations; the server answers 403 for standard users.
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.NewUser) (models.User, error)
	SetUserActive(ctx context.Context, userID int64, active bool) error
	SetUserRole(ctx context.Context, userID int64, role models.Role) error
	SetUserGroup(ctx context.Context, userID int64, change models.GroupChange) error
	Stats(ctx context.Context) (models.SystemStats, error)
	AccessLogs(ctx context.Context, limit uint64) ([]models.AccessLog, error)
}

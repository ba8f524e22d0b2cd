package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-family-finance/models"
)

// TransactionService records and reads transactions on behalf of a user.
type TransactionService interface {
	// Create turns draft into one row, an installment series or a recurring
	// template, depending on draft.Mode.
	Create(ctx context.Context, uc models.UserContext, draft models.TransactionDraft) ([]models.Transaction, error)
	List(ctx context.Context, uc models.UserContext, filter models.TransactionFilter) ([]models.Transaction, error)
	Update(ctx context.Context, uc models.UserContext, id int64, patch models.TransactionPatch) (models.Transaction, error)
	Delete(ctx context.Context, uc models.UserContext, id int64) error
	// MonthlySummary aggregates the rows visible to uc in period (YYYY-MM).
	// An empty period means the current month.
	MonthlySummary(ctx context.Context, uc models.UserContext, period string) (models.MonthlySummary, error)
	Catalog(ctx context.Context) models.Catalog
}

// RecurrenceService materialises the due occurrences of recurring templates.
type RecurrenceService interface {
	// Sweep processes the templates of uc, or of every owner when uc is nil
	// or an admin, and returns the number of rows created.
	Sweep(ctx context.Context, uc *models.UserContext) (int, error)
}

// AuthService authenticates users and issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	CurrentUser(ctx context.Context, userID int64) (models.User, error)
	ChangePassword(ctx context.Context, uc models.UserContext, change models.PasswordChange) error
}

// UserService holds the administrative operations. Every method except
// EnsureDefaultAdmin requires an admin caller.
type UserService interface {
	CreateUser(ctx context.Context, admin models.UserContext, user models.NewUser) (models.User, error)
	ListUsers(ctx context.Context, admin models.UserContext) ([]models.User, error)
	SetActive(ctx context.Context, admin models.UserContext, userID int64, active bool) error
	SetRole(ctx context.Context, admin models.UserContext, userID int64, role models.Role) error
	SetGroup(ctx context.Context, admin models.UserContext, userID int64, change models.GroupChange) error
	Stats(ctx context.Context, admin models.UserContext) (models.SystemStats, error)
	AccessLogs(ctx context.Context, admin models.UserContext, limit uint64) ([]models.AccessLog, error)
	// EnsureDefaultAdmin creates the bootstrap "admin" account when it is
	// missing and password is not empty.
	EnsureDefaultAdmin(ctx context.Context, password string) error
}

// AppInfoService exposes the version and build metadata of the server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

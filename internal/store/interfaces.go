package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-family-finance/models"
)

// TransactionRepository persists transactions and enforces the visibility
// rule on every read and mutation.
type TransactionRepository interface {
	// List returns the live transactions visible to uc, newest payment first.
	List(ctx context.Context, uc models.UserContext, filter models.TransactionFilter) ([]models.Transaction, error)
	// Insert stamps owner, group, shared and active status from uc and
	// writes all drafts atomically.
	Insert(ctx context.Context, uc models.UserContext, drafts ...models.Transaction) ([]models.Transaction, error)
	// Update applies patch to a live transaction owned by uc.
	Update(ctx context.Context, id int64, patch models.TransactionPatch, uc models.UserContext) (models.Transaction, error)
	// SoftDelete marks a live transaction owned by uc as deleted.
	SoftDelete(ctx context.Context, id int64, uc models.UserContext) error
	// ListRecurringTemplates returns the recurrence templates of ownerID, or
	// of every owner when ownerID is nil.
	ListRecurringTemplates(ctx context.Context, ownerID *int64) ([]models.Transaction, error)
	// MaterializeOccurrences inserts the occurrences of templateID whose
	// period is not stored yet and returns how many rows were created.
	MaterializeOccurrences(ctx context.Context, templateID int64, occurrences []models.Transaction) (int, error)
	// Stats counts transaction rows for the admin dashboard.
	Stats(ctx context.Context) (models.SystemStats, error)
}

// UserRepository persists accounts. Every state change writes its audit
// row in the same database transaction.
type UserRepository interface {
	Create(ctx context.Context, user models.User, audit models.AccessLog) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	TouchLastLogin(ctx context.Context, id int64, audit models.AccessLog) error
	SetActive(ctx context.Context, id int64, active bool, audit models.AccessLog) error
	SetRole(ctx context.Context, id int64, role models.Role, audit models.AccessLog) error
	SetGroup(ctx context.Context, id int64, change models.GroupChange, audit models.AccessLog) error
	SetPasswordHash(ctx context.Context, id int64, hash string, audit models.AccessLog) error
	// Stats counts user rows for the admin dashboard.
	Stats(ctx context.Context) (models.SystemStats, error)
}

// AccessLogRepository stores the append-only audit trail.
type AccessLogRepository interface {
	Append(ctx context.Context, entry models.AccessLog) error
	List(ctx context.Context, limit uint64) ([]models.AccessLog, error)
}

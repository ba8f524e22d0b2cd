package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-family-finance/internal/validators"
	"github.com/MKhiriev/go-family-finance/models"
)

// ─────────────────────────────────────────────
// Transactions
// ─────────────────────────────────────────────

type transactionValidationService struct {
	inner     TransactionService
	validator validators.Validator
}

// NewTransactionValidationService returns a wrapper that rejects malformed
// drafts and patches before they reach the inner service.
func NewTransactionValidationService() TransactionServiceWrapper {
	return &transactionValidationService{
		validator: validators.NewFinanceValidator(),
	}
}

func (v *transactionValidationService) Create(ctx context.Context, uc models.UserContext, draft models.TransactionDraft) ([]models.Transaction, error) {
	if err := v.validator.Validate(ctx, draft); err != nil {
		return nil, fmt.Errorf("invalid transaction draft: %w", err)
	}

	return v.inner.Create(ctx, uc, draft)
}

func (v *transactionValidationService) List(ctx context.Context, uc models.UserContext, filter models.TransactionFilter) ([]models.Transaction, error) {
	return v.inner.List(ctx, uc, filter)
}

func (v *transactionValidationService) Update(ctx context.Context, uc models.UserContext, id int64, patch models.TransactionPatch) (models.Transaction, error) {
	if err := v.validator.Validate(ctx, patch); err != nil {
		return models.Transaction{}, fmt.Errorf("invalid transaction patch: %w", err)
	}

	return v.inner.Update(ctx, uc, id, patch)
}

func (v *transactionValidationService) Delete(ctx context.Context, uc models.UserContext, id int64) error {
	return v.inner.Delete(ctx, uc, id)
}

func (v *transactionValidationService) MonthlySummary(ctx context.Context, uc models.UserContext, period string) (models.MonthlySummary, error) {
	return v.inner.MonthlySummary(ctx, uc, period)
}

func (v *transactionValidationService) Catalog(ctx context.Context) models.Catalog {
	return v.inner.Catalog(ctx)
}

func (v *transactionValidationService) Wrap(inner TransactionService) TransactionService {
	v.inner = inner
	return v
}

// ─────────────────────────────────────────────
// Authentication
// ─────────────────────────────────────────────

type authValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &authValidationService{
		validator: validators.NewFinanceValidator(),
	}
}

func (v *authValidationService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.User{}, err
	}

	return v.inner.Login(ctx, credentials)
}

func (v *authValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *authValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *authValidationService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.CurrentUser(ctx, userID)
}

func (v *authValidationService) ChangePassword(ctx context.Context, uc models.UserContext, change models.PasswordChange) error {
	if err := v.validator.Validate(ctx, change); err != nil {
		return err
	}

	return v.inner.ChangePassword(ctx, uc, change)
}

func (v *authValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

// ─────────────────────────────────────────────
// Administration
// ─────────────────────────────────────────────

type userValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &userValidationService{
		validator: validators.NewFinanceValidator(),
	}
}

func (v *userValidationService) CreateUser(ctx context.Context, admin models.UserContext, user models.NewUser) (models.User, error) {
	if err := v.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("invalid user: %w", err)
	}

	return v.inner.CreateUser(ctx, admin, user)
}

func (v *userValidationService) ListUsers(ctx context.Context, admin models.UserContext) ([]models.User, error) {
	return v.inner.ListUsers(ctx, admin)
}

func (v *userValidationService) SetActive(ctx context.Context, admin models.UserContext, userID int64, active bool) error {
	return v.inner.SetActive(ctx, admin, userID, active)
}

func (v *userValidationService) SetRole(ctx context.Context, admin models.UserContext, userID int64, role models.Role) error {
	if err := v.validator.Validate(ctx, role); err != nil {
		return err
	}

	return v.inner.SetRole(ctx, admin, userID, role)
}

func (v *userValidationService) SetGroup(ctx context.Context, admin models.UserContext, userID int64, change models.GroupChange) error {
	if err := v.validator.Validate(ctx, change); err != nil {
		return err
	}

	return v.inner.SetGroup(ctx, admin, userID, change)
}

func (v *userValidationService) Stats(ctx context.Context, admin models.UserContext) (models.SystemStats, error) {
	return v.inner.Stats(ctx, admin)
}

func (v *userValidationService) AccessLogs(ctx context.Context, admin models.UserContext, limit uint64) ([]models.AccessLog, error) {
	return v.inner.AccessLogs(ctx, admin, limit)
}

// EnsureDefaultAdmin is not validated: the bootstrap password comes from
// the operator's configuration.
func (v *userValidationService) EnsureDefaultAdmin(ctx context.Context, password string) error {
	return v.inner.EnsureDefaultAdmin(ctx, password)
}

func (v *userValidationService) Wrap(inner UserService) UserService {
	v.inner = inner
	return v
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/models"
)

// DefaultAdminUsername is the login of the bootstrap account.
const DefaultAdminUsername = "admin"

type userService struct {
	users        store.UserRepository
	transactions store.TransactionRepository
	accessLogs   store.AccessLogRepository
	logger       *logger.Logger
}

// NewUserService constructs the administrative [UserService].
func NewUserService(storages *store.Storages, logger *logger.Logger) UserService {
	return &userService{
		users:        storages.UserRepository,
		transactions: storages.TransactionRepository,
		accessLogs:   storages.AccessLogRepository,
		logger:       logger,
	}
}

func requireAdmin(uc models.UserContext) error {
	if !uc.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

// CreateUser stores a new active account. Role defaults to standard and
// group to [models.DefaultGroup]; a shared account may share.
func (s *userService) CreateUser(ctx context.Context, admin models.UserContext, user models.NewUser) (models.User, error) {
	if err := requireAdmin(admin); err != nil {
		return models.User{}, err
	}

	created, err := s.create(ctx, user, admin.ID)
	if err != nil {
		return models.User{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "userService.CreateUser").
		Int64("admin_id", admin.ID).
		Int64("user_id", created.ID).
		Msg("user created")

	return created, nil
}

func (s *userService) create(ctx context.Context, user models.NewUser, actorID int64) (models.User, error) {
	hash, err := utils.HashPassword(user.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.Role
	if role == "" {
		role = models.RoleStandard
	}
	group := strings.TrimSpace(user.Group)
	if group == "" {
		group = models.DefaultGroup
	}

	record := models.User{
		Username:     strings.TrimSpace(user.Username),
		PasswordHash: hash,
		Role:         role,
		Name:         user.Name,
		Email:        user.Email,
		Active:       true,
		Group:        group,
		Shared:       user.Shared,
		MayShare:     user.Shared,
	}

	audit := models.NewAccessLog(actorID, models.ActionUserCreated, fmt.Sprintf("user %s created with role %s", record.Username, role))
	return s.users.Create(ctx, record, audit)
}

func (s *userService) ListUsers(ctx context.Context, admin models.UserContext) ([]models.User, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// SetActive activates or deactivates userID. Admins cannot deactivate
// themselves.
func (s *userService) SetActive(ctx context.Context, admin models.UserContext, userID int64, active bool) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if userID == admin.ID && !active {
		return ErrSelfModification
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	audit := models.NewAccessLog(admin.ID, models.ActionStatusChange, fmt.Sprintf("user %d %s", userID, state))
	return s.users.SetActive(ctx, userID, active, audit)
}

// SetRole changes the role of userID. Admins cannot demote themselves.
func (s *userService) SetRole(ctx context.Context, admin models.UserContext, userID int64, role models.Role) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if userID == admin.ID && role != models.RoleAdmin {
		return ErrSelfModification
	}

	audit := models.NewAccessLog(admin.ID, models.ActionRoleChange, fmt.Sprintf("user %d role set to %s", userID, role))
	return s.users.SetRole(ctx, userID, role, audit)
}

// SetGroup moves userID to another sharing group. Rows the user already
// stored keep the group they were written with.
func (s *userService) SetGroup(ctx context.Context, admin models.UserContext, userID int64, change models.GroupChange) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}

	change.Group = strings.TrimSpace(change.Group)
	audit := models.NewAccessLog(admin.ID, models.ActionGroupChange,
		fmt.Sprintf("user %d moved to group %s (shared=%t)", userID, change.Group, change.Shared))
	return s.users.SetGroup(ctx, userID, change, audit)
}

// Stats merges the user and transaction counters.
func (s *userService) Stats(ctx context.Context, admin models.UserContext) (models.SystemStats, error) {
	if err := requireAdmin(admin); err != nil {
		return models.SystemStats{}, err
	}

	stats, err := s.users.Stats(ctx)
	if err != nil {
		return models.SystemStats{}, err
	}

	txStats, err := s.transactions.Stats(ctx)
	if err != nil {
		return models.SystemStats{}, err
	}

	stats.Transactions = txStats.Transactions
	stats.IncomeRows = txStats.IncomeRows
	stats.ExpenseRows = txStats.ExpenseRows
	stats.DeletedRows = txStats.DeletedRows
	stats.RecurringRecords = txStats.RecurringRecords

	return stats, nil
}

func (s *userService) AccessLogs(ctx context.Context, admin models.UserContext, limit uint64) ([]models.AccessLog, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	return s.accessLogs.List(ctx, limit)
}

// EnsureDefaultAdmin creates the "admin" account in group "admin" with
// shared=true when it does not exist. An empty password skips the
// bootstrap.
func (s *userService) EnsureDefaultAdmin(ctx context.Context, password string) error {
	log := logger.FromContext(ctx)

	if password == "" {
		log.Info().Str("func", "userService.EnsureDefaultAdmin").Msg("no admin password configured, skipping bootstrap")
		return nil
	}

	_, err := s.users.FindByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("failed to look up default admin: %w", err)
	}

	created, err := s.create(ctx, models.NewUser{
		Username: DefaultAdminUsername,
		Password: password,
		Role:     models.RoleAdmin,
		Name:     "Administrator",
		Group:    DefaultAdminUsername,
		Shared:   true,
	}, 0)
	if errors.Is(err, store.ErrUsernameAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Info().
		Str("func", "userService.EnsureDefaultAdmin").
		Int64("user_id", created.ID).
		Msg("default admin created")

	return nil
}

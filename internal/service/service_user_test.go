package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/mock"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userSvcMocks struct {
	users        *mock.MockUserRepository
	transactions *mock.MockTransactionRepository
	accessLogs   *mock.MockAccessLogRepository
}

func newTestUserSvc(t *testing.T, ctrl *gomock.Controller) (UserService, userSvcMocks) {
	t.Helper()
	m := userSvcMocks{
		users:        mock.NewMockUserRepository(ctrl),
		transactions: mock.NewMockTransactionRepository(ctrl),
		accessLogs:   mock.NewMockAccessLogRepository(ctrl),
	}
	storages := &store.Storages{
		UserRepository:        m.users,
		TransactionRepository: m.transactions,
		AccessLogRepository:   m.accessLogs,
	}
	return NewUserService(storages, logger.Nop()), m
}

var adminUser = models.UserContext{ID: 1, Role: models.RoleAdmin, Group: "admin", Shared: true}

func TestUserService_RequiresAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, standardUser, models.NewUser{Username: "x", Password: "Secret123"})
	assert.ErrorIs(t, err, ErrAdminOnly)

	_, err = svc.ListUsers(ctx, standardUser)
	assert.ErrorIs(t, err, ErrAdminOnly)

	assert.ErrorIs(t, svc.SetActive(ctx, standardUser, 2, false), ErrAdminOnly)
	assert.ErrorIs(t, svc.SetRole(ctx, standardUser, 2, models.RoleAdmin), ErrAdminOnly)
	assert.ErrorIs(t, svc.SetGroup(ctx, standardUser, 2, models.GroupChange{Group: "g"}), ErrAdminOnly)

	_, err = svc.Stats(ctx, standardUser)
	assert.ErrorIs(t, err, ErrAdminOnly)

	_, err = svc.AccessLogs(ctx, standardUser, 10)
	assert.ErrorIs(t, err, ErrAdminOnly)
}

func TestUserService_CreateUser_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.users.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User, audit models.AccessLog) (models.User, error) {
			assert.Equal(t, "ana", user.Username)
			assert.Equal(t, models.RoleStandard, user.Role)
			assert.Equal(t, models.DefaultGroup, user.Group)
			assert.True(t, user.Active)
			assert.False(t, user.Shared)
			assert.True(t, utils.CheckPassword(user.PasswordHash, "Secret123"))
			assert.Equal(t, models.ActionUserCreated, audit.Action)
			assert.Equal(t, adminUser.ID, audit.UserID)
			user.ID = 2
			return user, nil
		},
	)

	created, err := svc.CreateUser(ctx, adminUser, models.NewUser{Username: " ana ", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
}

func TestUserService_SelfModification(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetActive(ctx, adminUser, adminUser.ID, false), ErrSelfModification)
	assert.ErrorIs(t, svc.SetRole(ctx, adminUser, adminUser.ID, models.RoleStandard), ErrSelfModification)
}

func TestUserService_SetActiveRoleGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.users.EXPECT().SetActive(ctx, int64(2), false, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, _ bool, audit models.AccessLog) error {
			assert.Equal(t, models.ActionStatusChange, audit.Action)
			return nil
		},
	)
	m.users.EXPECT().SetRole(ctx, int64(2), models.RoleAdmin, gomock.Any()).Return(nil)
	m.users.EXPECT().SetGroup(ctx, int64(2), models.GroupChange{Group: "family", Shared: true}, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, _ models.GroupChange, audit models.AccessLog) error {
			assert.Equal(t, models.ActionGroupChange, audit.Action)
			return nil
		},
	)

	require.NoError(t, svc.SetActive(ctx, adminUser, 2, false))
	require.NoError(t, svc.SetRole(ctx, adminUser, 2, models.RoleAdmin))
	require.NoError(t, svc.SetGroup(ctx, adminUser, 2, models.GroupChange{Group: " family ", Shared: true}))
}

func TestUserService_Stats_MergesCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.users.EXPECT().Stats(ctx).Return(models.SystemStats{Users: 4, Admins: 1, Groups: 2}, nil)
	m.transactions.EXPECT().Stats(ctx).Return(models.SystemStats{Transactions: 10, ExpenseRows: 7, IncomeRows: 3, DeletedRows: 1}, nil)

	stats, err := svc.Stats(ctx, adminUser)
	require.NoError(t, err)
	assert.Equal(t, models.SystemStats{Users: 4, Admins: 1, Groups: 2, Transactions: 10, ExpenseRows: 7, IncomeRows: 3, DeletedRows: 1}, stats)
}

func TestUserService_AccessLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.accessLogs.EXPECT().List(ctx, uint64(50)).Return([]models.AccessLog{{ID: 1, Action: models.ActionLogin}}, nil)

	logs, err := svc.AccessLogs(ctx, adminUser, 50)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

// ── EnsureDefaultAdmin ───────────────────────────────────────────────────────

func TestUserService_EnsureDefaultAdmin_Creates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.users.EXPECT().FindByUsername(ctx, DefaultAdminUsername).Return(models.User{}, store.ErrNoUserWasFound)
	m.users.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User, _ models.AccessLog) (models.User, error) {
			assert.Equal(t, models.RoleAdmin, user.Role)
			assert.Equal(t, "admin", user.Group)
			assert.True(t, user.Shared)
			user.ID = 1
			return user, nil
		},
	)

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "Admin1234"))
}

func TestUserService_EnsureDefaultAdmin_ExistingOrDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.users.EXPECT().FindByUsername(ctx, DefaultAdminUsername).Return(models.User{ID: 1}, nil)

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "Admin1234"))
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, ""))
}

func TestUserService_EnsureDefaultAdmin_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	m.users.EXPECT().FindByUsername(ctx, DefaultAdminUsername).Return(models.User{}, store.ErrExecutingQuery)

	assert.ErrorIs(t, svc.EnsureDefaultAdmin(ctx, "Admin1234"), store.ErrExecutingQuery)
}

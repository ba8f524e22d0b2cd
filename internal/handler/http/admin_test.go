package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-family-finance/internal/service"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAdminRoutes_RejectStandardUser(t *testing.T) {
	routes := []routeCase{
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPost, "/api/admin/users"},
		{http.MethodPatch, "/api/admin/users/2/status"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/logs"},
	}

	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			h, m := newTestHandler(t)
			expectAuth(m, familyMember)

			rec := serve(t, h, tc.method, tc.path, nil, true)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestListUsers(t *testing.T) {
	h, m := newTestHandler(t)
	expectAuth(m, rootAdmin)
	m.users.EXPECT().ListUsers(gomock.Any(), rootAdmin.Context()).Return([]models.User{rootAdmin, familyMember}, nil)

	rec := serve(t, h, http.MethodGet, "/api/admin/users", nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestCreateUser(t *testing.T) {
	h, m := newTestHandler(t)
	expectAuth(m, rootAdmin)

	newUser := models.NewUser{Username: "bob", Password: "Secret123", Group: "family"}
	m.users.EXPECT().CreateUser(gomock.Any(), rootAdmin.Context(), newUser).
		Return(models.User{ID: 4, Username: "bob", Group: "family", Active: true}, nil)

	rec := serve(t, h, http.MethodPost, "/api/admin/users", newUser, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(4), got.ID)
}

func TestCreateUser_Duplicate(t *testing.T) {
	h, m := newTestHandler(t)
	expectAuth(m, rootAdmin)
	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUsernameAlreadyExists)

	rec := serve(t, h, http.MethodPost, "/api/admin/users", models.NewUser{Username: "ana", Password: "Secret123"}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetUserStatusRoleGroup(t *testing.T) {
	h, m := newTestHandler(t)
	uc := rootAdmin.Context()

	m.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{UserID: rootAdmin.ID}, nil).Times(3)
	m.auth.EXPECT().CurrentUser(gomock.Any(), rootAdmin.ID).Return(rootAdmin, nil).Times(3)

	m.users.EXPECT().SetActive(gomock.Any(), uc, int64(2), false).Return(nil)
	m.users.EXPECT().SetRole(gomock.Any(), uc, int64(2), models.RoleAdmin).Return(nil)
	m.users.EXPECT().SetGroup(gomock.Any(), uc, int64(2), models.GroupChange{Group: "family", Shared: true}).Return(nil)

	rec := serve(t, h, http.MethodPatch, "/api/admin/users/2/status", models.StatusChange{Active: false}, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, h, http.MethodPatch, "/api/admin/users/2/role", models.RoleChange{Role: models.RoleAdmin}, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, h, http.MethodPatch, "/api/admin/users/2/group", models.GroupChange{Group: "family", Shared: true}, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSetUserStatus_Self(t *testing.T) {
	h, m := newTestHandler(t)
	expectAuth(m, rootAdmin)
	m.users.EXPECT().SetActive(gomock.Any(), gomock.Any(), rootAdmin.ID, false).Return(service.ErrSelfModification)

	rec := serve(t, h, http.MethodPatch, "/api/admin/users/1/status", models.StatusChange{Active: false}, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetUserRole_UnknownUser(t *testing.T) {
	h, m := newTestHandler(t)
	expectAuth(m, rootAdmin)
	m.users.EXPECT().SetRole(gomock.Any(), gomock.Any(), int64(99), gomock.Any()).Return(store.ErrNoUserWasFound)

	rec := serve(t, h, http.MethodPatch, "/api/admin/users/99/role", models.RoleChange{Role: models.RoleStandard}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	h, m := newTestHandler(t)
	expectAuth(m, rootAdmin)
	m.users.EXPECT().Stats(gomock.Any(), rootAdmin.Context()).Return(models.SystemStats{Users: 2, Admins: 1, Transactions: 40}, nil)

	rec := serve(t, h, http.MethodGet, "/api/admin/stats", nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.SystemStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 40, got.Transactions)
}

func TestAccessLogs_Limit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit uint64
	}{
		{"default", "", defaultAccessLogLimit},
		{"explicit", "?limit=5", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			expectAuth(m, rootAdmin)
			m.users.EXPECT().AccessLogs(gomock.Any(), gomock.Any(), tt.limit).
				Return([]models.AccessLog{{ID: 1, UserID: 3, Action: models.ActionLogin}}, nil)

			rec := serve(t, h, http.MethodGet, "/api/admin/logs"+tt.query, nil, true)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestAccessLogs_BadLimit(t *testing.T) {
	h, m := newTestHandler(t)
	expectAuth(m, rootAdmin)

	rec := serve(t, h, http.MethodGet, "/api/admin/logs?limit=zero", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

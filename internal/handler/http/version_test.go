package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-family-finance/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetServerVersion_PlainText(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3")

	rec := serve(t, h, http.MethodGet, "/api/version/", nil, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "v1.2.3", rec.Body.String())
}

func TestGetServerVersion_BuildInfo(t *testing.T) {
	h, m := newTestHandler(t)
	info := models.NewAppBuildInfo("v1.2.3", "2026-01-01", "abc123")
	m.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(info)

	rec := serve(t, h, http.MethodGet, "/api/version/?build", nil, false)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.AppBuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, info, got)
}

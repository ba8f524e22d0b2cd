package http

import (
	"net/http"

	"github.com/MKhiriev/go-family-finance/internal/utils"
)

// getServerVersion answers with the plain version string, or with the full
// build metadata as JSON when the "build" query parameter is present.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("build") {
		utils.WriteJSON(w, h.services.AppInfoService.GetBuildInfo(r.Context()), http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.services.AppInfoService.GetAppVersion(r.Context())))
}

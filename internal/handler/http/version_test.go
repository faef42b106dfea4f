package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetServerVersion(t *testing.T) {
	for _, svc := range []config.Service{config.AuthService, config.GameService} {
		t.Run(string(svc), func(t *testing.T) {
			h, m := newTestHandler(t, svc)
			m.appInfo.EXPECT().GetAppInfo(gomock.Any()).Return(models.VersionResponse{
				Service:      string(svc),
				Version:      "1.0.0",
				BuildVersion: "v1.2.3",
				BuildDate:    "2026-03-01",
				BuildCommit:  "abc123",
			})

			router := h.InitAuthRoutes()
			if svc == config.GameService {
				router = h.InitGameRoutes()
			}
			rec := serve(router, jsonRequest(http.MethodGet, "/api/version", ""))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp models.VersionResponse
			require.NoError(t, json.Unmarshal([]byte(readBody(t, rec)), &resp))
			assert.Equal(t, models.VersionResponse{
				Service:      string(svc),
				Version:      "1.0.0",
				BuildVersion: "v1.2.3",
				BuildDate:    "2026-03-01",
				BuildCommit:  "abc123",
			}, resp)
		})
	}
}

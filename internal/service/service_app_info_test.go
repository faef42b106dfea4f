package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_EmptyVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.AuthService, config.App{}, models.NewAppBuildInfo("v1", "", ""), logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestGetAppInfo(t *testing.T) {
	tests := []struct {
		name      string
		service   config.Service
		buildInfo models.AppBuildInfo
		want      models.VersionResponse
	}{
		{
			name:      "auth with full build metadata",
			service:   config.AuthService,
			buildInfo: models.NewAppBuildInfo("v1.2.3", "2026-03-01", "abc123"),
			want: models.VersionResponse{
				Service:      "auth",
				Version:      "1.0.0",
				BuildVersion: "v1.2.3",
				BuildDate:    "2026-03-01",
				BuildCommit:  "abc123",
			},
		},
		{
			name:      "game without linker flags",
			service:   config.GameService,
			buildInfo: models.NewAppBuildInfo("", "", ""),
			want: models.VersionResponse{
				Service:      "game",
				Version:      "1.0.0",
				BuildVersion: "N/A",
				BuildDate:    "N/A",
				BuildCommit:  "N/A",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(tt.service, config.App{Version: "1.0.0"}, tt.buildInfo, logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, tt.want, svc.GetAppInfo(context.Background()))
		})
	}
}

package service

import (
	"context"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/models"
)

type appInfoService struct {
	info models.VersionResponse

	logger *logger.Logger
}

// NewAppInfoService returns the [AppInfoService] of service svc. The
// configured version is required; missing build metadata reads "N/A".
func NewAppInfoService(svc config.Service, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	info := buildInfo.VersionResponse(string(svc), cfg.Version)
	logger.Debug().
		Str("service", info.Service).
		Str("version", info.Version).
		Str("build_version", info.BuildVersion).
		Msg("app info resolved")

	return &appInfoService{
		info:   info,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.VersionResponse {
	return s.info
}

package service

import (
	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/queue"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/models"
)

// Services aggregates the services of one binary. Only the fields the
// running service needs are populated.
type Services struct {
	AuthService      AuthService
	TokenService     TokenService
	StateInitializer StateInitializer
	GameService      GameService
	AppInfoService   AppInfoService
}

// NewAuthServices wires the services of the auth binary.
func NewAuthServices(storages *store.Storages, publisher queue.Publisher, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(config.AuthService, cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(storages.UserRepository, publisher, cfg.Queue.UserCreated, logger)

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(authService),
		TokenService:   NewTokenService(cfg.App, logger),
		AppInfoService: appInfoService,
	}, nil
}

// NewGameServices wires the services of the game binary.
func NewGameServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(config.GameService, cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		TokenService:     NewTokenService(cfg.App, logger),
		StateInitializer: NewStateInitializer(storages.GameStateRepository, logger),
		GameService:      NewGameService(storages.GameStateRepository, logger),
		AppInfoService:   appInfoService,
	}, nil
}

package service

import (
	"context"

	"github.com/MKhiriev/go-realm/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AuthServiceWrapper

// AuthService registers and authenticates users of the credential store.
type AuthService interface {
	// RegisterUser stores a new account and announces it with a user_created
	// event. A failed publish does not fail the registration.
	RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error)
	// Login returns the account matching credentials or [ErrInvalidCredentials].
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
}

// AuthServiceWrapper decorates an AuthService, e.g. with input validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// TokenService issues and verifies identity tokens.
type TokenService interface {
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	// ParseToken fails with exactly one of [ErrTokenInvalid],
	// [ErrTokenExpired] or [ErrTokenMissingClaims].
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// StateInitializer creates the default game state of a user exactly once,
// no matter how often or how concurrently it is invoked.
type StateInitializer interface {
	EnsureState(ctx context.Context, userID int64, username string) (models.InitOutcome, error)
	// HandleUserCreated is the consumer entry point for user_created events.
	HandleUserCreated(ctx context.Context, event models.UserCreatedEvent) error
	// LoadState is the fallback entry point of authenticated game visits: it
	// returns the state, initializing it first when it is missing.
	LoadState(ctx context.Context, userID int64, username string) (models.GameState, error)
}

// GameService implements collection and upgrades.
type GameService interface {
	GetState(ctx context.Context, userID int64) (models.GameState, error)
	Collect(ctx context.Context, userID int64) (models.Resources, error)
	Upgrade(ctx context.Context, userID int64, buildingType models.BuildingType) (models.Buildings, error)
}

// AppInfoService reports which service is running and how it was built.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.VersionResponse
}

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-realm/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store of the auth service.
type UserRepository interface {
	// CreateUser inserts a new credential record and returns it with the
	// generated UserID. A duplicate username yields [ErrUsernameTaken].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByUsername returns the record with the exact username or
	// [ErrUserNotFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// InitResult reports which records a [GameStateRepository.InitState] call
// actually inserted.
type InitResult struct {
	ResourcesCreated bool
	BuildingsCreated bool
}

// GameStateRepository is the game state store of the game service.
type GameStateRepository interface {
	// GetState returns both records of a user or [ErrGameStateNotFound]
	// when either is missing.
	GetState(ctx context.Context, userID int64) (models.GameState, error)
	// InitState inserts whichever of the two records is missing, in one
	// transaction. Existing records are left untouched.
	InitState(ctx context.Context, state models.GameState) (InitResult, error)
	// ApplyCollection adds yield to the resources and moves last_collected to
	// collectedAt, but only if last_collected still equals expectedLast.
	// Otherwise it returns [ErrCollectConflict].
	ApplyCollection(ctx context.Context, userID int64, yield models.Resources, expectedLast, collectedAt time.Time) (models.Resources, error)
	// UpgradeBuilding raises the level of one building by one.
	UpgradeBuilding(ctx context.Context, userID int64, buildingType models.BuildingType) (models.Buildings, error)
}

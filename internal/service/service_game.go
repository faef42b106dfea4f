package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/metrics"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/models"
)

// gameService is the resource accrual engine.
type gameService struct {
	gameStateRepository store.GameStateRepository

	now    func() time.Time
	logger *logger.Logger
}

// NewGameService constructs a GameService over the game state store.
func NewGameService(gameStateRepository store.GameStateRepository, logger *logger.Logger) GameService {
	return &gameService{
		gameStateRepository: gameStateRepository,
		now:                 time.Now,
		logger:              logger,
	}
}

func (g *gameService) GetState(ctx context.Context, userID int64) (models.GameState, error) {
	state, err := g.gameStateRepository.GetState(ctx, userID)
	if err != nil {
		return models.GameState{}, fmt.Errorf("error reading game state: %w", err)
	}

	return state, nil
}

// Collect adds one round of production to the user's resources.
//
// A collection is allowed once the cooldown has fully elapsed since the
// previous one. The read of the building levels and the guarded update form
// an optimistic transaction: if another collection moves last_collected in
// between, this one loses and reports ErrTooSoon.
func (g *gameService) Collect(ctx context.Context, userID int64) (models.Resources, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "gameService.Collect").
		Int64("user_id", userID).
		Logger()

	state, err := g.gameStateRepository.GetState(ctx, userID)
	if err != nil {
		metrics.CollectionsTotal.WithLabelValues(collectResult(err)).Inc()
		log.Err(err).Msg("failed to read game state")
		return models.Resources{}, fmt.Errorf("error reading game state: %w", err)
	}

	now := g.now().UTC()
	if !state.CanCollect(now) {
		metrics.CollectionsTotal.WithLabelValues(metrics.ResultTooSoon).Inc()
		log.Debug().Time("next_collect_at", state.NextCollectAt()).Msg("collection before cooldown")
		return models.Resources{}, fmt.Errorf("%w: next collection at %s", ErrTooSoon, state.NextCollectAt().Format(time.RFC3339))
	}

	yield := state.Buildings.Yield()
	resources, err := g.gameStateRepository.ApplyCollection(ctx, userID, yield, state.Resources.LastCollected, now)
	if errors.Is(err, store.ErrCollectConflict) {
		err = fmt.Errorf("%w: %w", ErrTooSoon, err)
	}
	if err != nil {
		metrics.CollectionsTotal.WithLabelValues(collectResult(err)).Inc()
		log.Err(err).Msg("failed to apply collection")
		return models.Resources{}, err
	}

	metrics.CollectionsTotal.WithLabelValues(metrics.ResultOK).Inc()
	log.Info().
		Int64("wood", yield.Wood).
		Int64("stone", yield.Stone).
		Int64("gold", yield.Gold).
		Msg("resources collected")

	return resources, nil
}

// Upgrade raises one building by one level. Upgrades are free.
func (g *gameService) Upgrade(ctx context.Context, userID int64, buildingType models.BuildingType) (models.Buildings, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "gameService.Upgrade").
		Int64("user_id", userID).
		Stringer("building", buildingType).
		Logger()

	if !buildingType.Valid() {
		return models.Buildings{}, fmt.Errorf("%w: %s", models.ErrInvalidBuildingType, buildingType)
	}

	buildings, err := g.gameStateRepository.UpgradeBuilding(ctx, userID, buildingType)
	if err != nil {
		log.Err(err).Msg("failed to upgrade building")
		return models.Buildings{}, fmt.Errorf("error upgrading building: %w", err)
	}

	metrics.UpgradesTotal.WithLabelValues(buildingType.String()).Inc()
	log.Info().Int("level", buildingType.Level(buildings)).Msg("building upgraded")

	return buildings, nil
}

func collectResult(err error) string {
	switch {
	case errors.Is(err, ErrTooSoon):
		return metrics.ResultTooSoon
	case errors.Is(err, store.ErrGameStateNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}

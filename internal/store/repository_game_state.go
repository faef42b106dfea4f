package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/models"
)

const onConflictDoNothing = "ON CONFLICT (user_id) DO NOTHING"

var (
	resourcesColumns = []string{"user_id", "wood", "stone", "gold", "last_collected"}
	buildingsColumns = []string{"user_id", "sawmill_level", "quarry_level", "mine_level"}
)

// gameStateRepository is the SQL implementation of [GameStateRepository] over
// the "resources" and "buildings" tables.
type gameStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewGameStateRepository constructs a [GameStateRepository] backed by the
// provided database connection and logger.
func NewGameStateRepository(db *DB, logger *logger.Logger) GameStateRepository {
	logger.Debug().Msg("creating game state repository")
	return &gameStateRepository{
		DB:     db,
		logger: logger,
	}
}

// GetState reads both records of the user. A missing record of either kind
// yields [ErrGameStateNotFound].
func (g *gameStateRepository) GetState(ctx context.Context, userID int64) (models.GameState, error) {
	resources, err := g.getResources(ctx, userID)
	if err != nil {
		return models.GameState{}, err
	}

	buildings, err := g.getBuildings(ctx, userID)
	if err != nil {
		return models.GameState{}, err
	}

	return models.GameState{Resources: resources, Buildings: buildings}, nil
}

func (g *gameStateRepository) getResources(ctx context.Context, userID int64) (models.Resources, error) {
	log := logger.FromContext(ctx)

	query, args, err := g.builder.
		Select(resourcesColumns...).
		From(models.Resources{}.TableName()).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return models.Resources{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	resources, err := scanResources(g.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Resources{}, fmt.Errorf("%w: resources of user %d", ErrGameStateNotFound, userID)
	case err != nil:
		log.Err(err).Str("func", "gameStateRepository.getResources").Int64("user_id", userID).Msg("error selecting resources")
		return models.Resources{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return resources, nil
}

func (g *gameStateRepository) getBuildings(ctx context.Context, userID int64) (models.Buildings, error) {
	log := logger.FromContext(ctx)

	query, args, err := g.builder.
		Select(buildingsColumns...).
		From(models.Buildings{}.TableName()).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return models.Buildings{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	buildings, err := scanBuildings(g.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Buildings{}, fmt.Errorf("%w: buildings of user %d", ErrGameStateNotFound, userID)
	case err != nil:
		log.Err(err).Str("func", "gameStateRepository.getBuildings").Int64("user_id", userID).Msg("error selecting buildings")
		return models.Buildings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return buildings, nil
}

// InitState inserts the default records of state in one transaction using
// conditional inserts, so concurrent initializers of the same user never
// fail on the primary key and never overwrite each other.
func (g *gameStateRepository) InitState(ctx context.Context, state models.GameState) (InitResult, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "gameStateRepository.InitState").
		Int64("user_id", state.Resources.UserID).
		Logger()

	resourcesQuery, resourcesArgs, err := g.builder.
		Insert(state.Resources.TableName()).
		Columns(resourcesColumns...).
		Values(state.Resources.UserID, state.Resources.Wood, state.Resources.Stone, state.Resources.Gold, toMillis(state.Resources.LastCollected)).
		Suffix(onConflictDoNothing).
		ToSql()
	if err != nil {
		return InitResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	buildingsQuery, buildingsArgs, err := g.builder.
		Insert(state.Buildings.TableName()).
		Columns(buildingsColumns...).
		Values(state.Buildings.UserID, state.Buildings.SawmillLevel, state.Buildings.QuarryLevel, state.Buildings.MineLevel).
		Suffix(onConflictDoNothing).
		ToSql()
	if err != nil {
		return InitResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := g.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return InitResult{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var result InitResult
	if result.ResourcesCreated, err = execInsert(ctx, tx, resourcesQuery, resourcesArgs); err != nil {
		log.Err(err).Msg("failed to insert resources")
		return InitResult{}, err
	}
	if result.BuildingsCreated, err = execInsert(ctx, tx, buildingsQuery, buildingsArgs); err != nil {
		log.Err(err).Msg("failed to insert buildings")
		return InitResult{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return InitResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().
		Bool("resources_created", result.ResourcesCreated).
		Bool("buildings_created", result.BuildingsCreated).
		Msg("game state initialized")

	return result, nil
}

// execInsert runs a conditional insert and reports whether a row was added.
func execInsert(ctx context.Context, tx *sql.Tx, query string, args []any) (bool, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected > 0, nil
}

// ApplyCollection adds yield to the user's resources in a single UPDATE
// guarded by the previously observed last_collected value.
func (g *gameStateRepository) ApplyCollection(ctx context.Context, userID int64, yield models.Resources, expectedLast, collectedAt time.Time) (models.Resources, error) {
	log := logger.FromContext(ctx)

	query, args, err := g.builder.
		Update(models.Resources{}.TableName()).
		Set("wood", sq.Expr("wood + ?", yield.Wood)).
		Set("stone", sq.Expr("stone + ?", yield.Stone)).
		Set("gold", sq.Expr("gold + ?", yield.Gold)).
		Set("last_collected", toMillis(collectedAt)).
		Where("user_id = ? AND last_collected = ?", userID, toMillis(expectedLast)).
		Suffix("RETURNING " + strings.Join(resourcesColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Resources{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	resources, err := scanResources(g.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Warn().
			Str("func", "gameStateRepository.ApplyCollection").
			Int64("user_id", userID).
			Time("expected_last_collected", expectedLast).
			Msg("optimistic lock failed: last_collected changed")
		return models.Resources{}, ErrCollectConflict
	case err != nil:
		log.Err(err).Str("func", "gameStateRepository.ApplyCollection").Int64("user_id", userID).Msg("error updating resources")
		return models.Resources{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return resources, nil
}

// UpgradeBuilding increments one building level with a single atomic UPDATE.
func (g *gameStateRepository) UpgradeBuilding(ctx context.Context, userID int64, buildingType models.BuildingType) (models.Buildings, error) {
	log := logger.FromContext(ctx)

	column, err := levelColumn(buildingType)
	if err != nil {
		return models.Buildings{}, err
	}

	query, args, err := g.builder.
		Update(models.Buildings{}.TableName()).
		Set(column, sq.Expr(column+" + 1")).
		Where("user_id = ?", userID).
		Suffix("RETURNING " + strings.Join(buildingsColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Buildings{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	buildings, err := scanBuildings(g.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Buildings{}, fmt.Errorf("%w: buildings of user %d", ErrGameStateNotFound, userID)
	case err != nil:
		log.Err(err).
			Str("func", "gameStateRepository.UpgradeBuilding").
			Int64("user_id", userID).
			Stringer("building", buildingType).
			Msg("error upgrading building")
		return models.Buildings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return buildings, nil
}

// levelColumn maps a building type onto its column. The column name is never
// taken from user input.
func levelColumn(buildingType models.BuildingType) (string, error) {
	switch buildingType {
	case models.Sawmill:
		return "sawmill_level", nil
	case models.Quarry:
		return "quarry_level", nil
	case models.Mine:
		return "mine_level", nil
	default:
		return "", fmt.Errorf("%w: %d", models.ErrInvalidBuildingType, int(buildingType))
	}
}

func scanResources(row *sql.Row) (models.Resources, error) {
	var (
		r             models.Resources
		lastCollected int64
	)
	if err := row.Scan(&r.UserID, &r.Wood, &r.Stone, &r.Gold, &lastCollected); err != nil {
		return models.Resources{}, err
	}
	r.LastCollected = fromMillis(lastCollected)

	return r, nil
}

func scanBuildings(row *sql.Row) (models.Buildings, error) {
	var b models.Buildings
	if err := row.Scan(&b.UserID, &b.SawmillLevel, &b.QuarryLevel, &b.MineLevel); err != nil {
		return models.Buildings{}, err
	}

	return b, nil
}

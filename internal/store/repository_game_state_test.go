package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/models"
)

var (
	resourcesRowColumns = []string{"user_id", "wood", "stone", "gold", "last_collected"}
	buildingsRowColumns = []string{"user_id", "sawmill_level", "quarry_level", "mine_level"}
)

func newMockGameStateRepo(t *testing.T) (GameStateRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewGameStateRepository(newDB(db, config.DriverPostgres, logger.Nop()), logger.Nop()), mock
}

func newSQLiteGameStateRepo(t *testing.T) GameStateRepository {
	t.Helper()
	db := newSQLiteDB(t)
	require.NoError(t, db.MigrateGame(context.Background()))
	return NewGameStateRepository(db, logger.Nop())
}

// ── sqlmock ───────────────────────────────────────────────────────────────────

func TestGetState_Success(t *testing.T) {
	repo, mock := newMockGameStateRepo(t)
	last := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, wood, stone, gold, last_collected FROM resources WHERE user_id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(resourcesRowColumns).AddRow(5, 10, 5, 2, last.UnixMilli()))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, sawmill_level, quarry_level, mine_level FROM buildings WHERE user_id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(buildingsRowColumns).AddRow(5, 1, 1, 2))

	state, err := repo.GetState(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, models.Resources{UserID: 5, Wood: 10, Stone: 5, Gold: 2, LastCollected: last}, state.Resources)
	assert.Equal(t, models.Buildings{UserID: 5, SawmillLevel: 1, QuarryLevel: 1, MineLevel: 2}, state.Buildings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetState_MissingRecords(t *testing.T) {
	t.Run("resources", func(t *testing.T) {
		repo, mock := newMockGameStateRepo(t)
		mock.ExpectQuery("FROM resources").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetState(context.Background(), 5)
		assert.ErrorIs(t, err, ErrGameStateNotFound)
	})

	t.Run("buildings", func(t *testing.T) {
		repo, mock := newMockGameStateRepo(t)
		mock.ExpectQuery("FROM resources").
			WillReturnRows(sqlmock.NewRows(resourcesRowColumns).AddRow(5, 0, 0, 0, 0))
		mock.ExpectQuery("FROM buildings").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetState(context.Background(), 5)
		assert.ErrorIs(t, err, ErrGameStateNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newMockGameStateRepo(t)
		mock.ExpectQuery("FROM resources").WillReturnError(errors.New("connection reset"))

		_, err := repo.GetState(context.Background(), 5)
		assert.ErrorIs(t, err, ErrExecutingQuery)
		assert.NotErrorIs(t, err, ErrGameStateNotFound)
	})
}

func TestInitState_Transaction(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	state := models.NewGameState(9, now)

	tests := []struct {
		name         string
		resourcesNew int64
		buildingsNew int64
		want         InitResult
	}{
		{"both created", 1, 1, InitResult{ResourcesCreated: true, BuildingsCreated: true}},
		{"resources existed", 0, 1, InitResult{BuildingsCreated: true}},
		{"nothing created", 0, 0, InitResult{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockGameStateRepo(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO resources (user_id,wood,stone,gold,last_collected) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (user_id) DO NOTHING`)).
				WithArgs(int64(9), int64(0), int64(0), int64(0), now.UnixMilli()).
				WillReturnResult(sqlmock.NewResult(0, tt.resourcesNew))
			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO buildings (user_id,sawmill_level,quarry_level,mine_level) VALUES ($1,$2,$3,$4) ON CONFLICT (user_id) DO NOTHING`)).
				WithArgs(int64(9), 1, 1, 1).
				WillReturnResult(sqlmock.NewResult(0, tt.buildingsNew))
			mock.ExpectCommit()

			result, err := repo.InitState(context.Background(), state)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInitState_RollsBackOnError(t *testing.T) {
	repo, mock := newMockGameStateRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resources").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO buildings").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.InitState(context.Background(), models.NewGameState(9, time.Now()))

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitState_BeginError(t *testing.T) {
	repo, mock := newMockGameStateRepo(t)
	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := repo.InitState(context.Background(), models.NewGameState(9, time.Now()))
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestInitState_CommitError(t *testing.T) {
	repo, mock := newMockGameStateRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resources").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO buildings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	_, err := repo.InitState(context.Background(), models.NewGameState(9, time.Now()))
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestApplyCollection_Query(t *testing.T) {
	repo, mock := newMockGameStateRepo(t)
	expected := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	collected := expected.Add(61 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE resources SET wood = wood + $1, stone = stone + $2, gold = gold + $3, last_collected = $4 WHERE user_id = $5 AND last_collected = $6 RETURNING user_id, wood, stone, gold, last_collected`)).
		WithArgs(int64(10), int64(5), int64(2), collected.UnixMilli(), int64(3), expected.UnixMilli()).
		WillReturnRows(sqlmock.NewRows(resourcesRowColumns).AddRow(3, 10, 5, 2, collected.UnixMilli()))

	resources, err := repo.ApplyCollection(context.Background(), 3, models.Resources{Wood: 10, Stone: 5, Gold: 2}, expected, collected)

	require.NoError(t, err)
	assert.Equal(t, models.Resources{UserID: 3, Wood: 10, Stone: 5, Gold: 2, LastCollected: collected}, resources)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCollection_Conflict(t *testing.T) {
	repo, mock := newMockGameStateRepo(t)
	mock.ExpectQuery("UPDATE resources").WillReturnError(sql.ErrNoRows)

	_, err := repo.ApplyCollection(context.Background(), 3, models.Resources{}, time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrCollectConflict)
}

func TestUpgradeBuilding_Query(t *testing.T) {
	tests := []struct {
		buildingType models.BuildingType
		column       string
	}{
		{models.Sawmill, "sawmill_level"},
		{models.Quarry, "quarry_level"},
		{models.Mine, "mine_level"},
	}

	for _, tt := range tests {
		t.Run(tt.buildingType.String(), func(t *testing.T) {
			repo, mock := newMockGameStateRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta(`UPDATE buildings SET `+tt.column+` = `+tt.column+` + 1 WHERE user_id = $1 RETURNING user_id, sawmill_level, quarry_level, mine_level`)).
				WithArgs(int64(3)).
				WillReturnRows(sqlmock.NewRows(buildingsRowColumns).AddRow(3, 1, 1, 2))

			buildings, err := repo.UpgradeBuilding(context.Background(), 3, tt.buildingType)

			require.NoError(t, err)
			assert.Equal(t, int64(3), buildings.UserID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpgradeBuilding_InvalidType(t *testing.T) {
	repo, mock := newMockGameStateRepo(t)

	_, err := repo.UpgradeBuilding(context.Background(), 3, models.BuildingType(42))

	assert.ErrorIs(t, err, models.ErrInvalidBuildingType)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query may run for an invalid type")
}

func TestUpgradeBuilding_NotFound(t *testing.T) {
	repo, mock := newMockGameStateRepo(t)
	mock.ExpectQuery("UPDATE buildings").WillReturnError(sql.ErrNoRows)

	_, err := repo.UpgradeBuilding(context.Background(), 3, models.Mine)
	assert.ErrorIs(t, err, ErrGameStateNotFound)
}

// ── SQLite ────────────────────────────────────────────────────────────────────

func TestGameStateRepository_SQLite_InitIsIdempotent(t *testing.T) {
	repo := newSQLiteGameStateRepo(t)
	ctx := context.Background()
	created := time.Now().Truncate(time.Millisecond)

	first, err := repo.InitState(ctx, models.NewGameState(1, created))
	require.NoError(t, err)
	assert.Equal(t, InitResult{ResourcesCreated: true, BuildingsCreated: true}, first)

	_, err = repo.UpgradeBuilding(ctx, 1, models.Mine)
	require.NoError(t, err)

	second, err := repo.InitState(ctx, models.NewGameState(1, created.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, InitResult{}, second)

	state, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Buildings.MineLevel, "re-initialization must not reset levels")
	assert.True(t, created.Equal(state.Resources.LastCollected))
}

func TestGameStateRepository_SQLite_ConcurrentInit(t *testing.T) {
	repo := newSQLiteGameStateRepo(t)
	ctx := context.Background()

	const workers = 8
	results := make([]InitResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = repo.InitState(ctx, models.NewGameState(2, time.Now()))
		}()
	}
	wg.Wait()

	resourcesCreated, buildingsCreated := 0, 0
	for i := range workers {
		require.NoError(t, errs[i])
		if results[i].ResourcesCreated {
			resourcesCreated++
		}
		if results[i].BuildingsCreated {
			buildingsCreated++
		}
	}
	assert.Equal(t, 1, resourcesCreated)
	assert.Equal(t, 1, buildingsCreated)
}

func TestGameStateRepository_SQLite_CollectAndUpgrade(t *testing.T) {
	repo := newSQLiteGameStateRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	_, err := repo.InitState(ctx, models.NewGameState(3, created))
	require.NoError(t, err)

	collectedAt := created.Add(61 * time.Minute)
	resources, err := repo.ApplyCollection(ctx, 3, models.Resources{Wood: 10, Stone: 5, Gold: 2}, created, collectedAt)
	require.NoError(t, err)
	assert.Equal(t, models.Resources{UserID: 3, Wood: 10, Stone: 5, Gold: 2, LastCollected: collectedAt}, resources)

	// the same guard value no longer matches
	_, err = repo.ApplyCollection(ctx, 3, models.Resources{Wood: 10}, created, collectedAt.Add(time.Minute))
	assert.ErrorIs(t, err, ErrCollectConflict)

	buildings, err := repo.UpgradeBuilding(ctx, 3, models.Mine)
	require.NoError(t, err)
	assert.Equal(t, models.Buildings{UserID: 3, SawmillLevel: 1, QuarryLevel: 1, MineLevel: 2}, buildings)

	_, err = repo.UpgradeBuilding(ctx, 404, models.Sawmill)
	assert.ErrorIs(t, err, ErrGameStateNotFound)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/service"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func flashValues(t *testing.T, c *http.Cookie) url.Values {
	t.Helper()
	require.NotNil(t, c, "flash cookie expected")
	values, err := url.ParseQuery(c.Value)
	require.NoError(t, err)
	return values
}

// ── game page ─────────────────────────────────────────────────────────────────

func TestGamePage_RendersState(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	state := aliceState(testNow.Add(-2 * time.Hour))
	state.Resources.Wood = 40
	state.Buildings.MineLevel = 3
	m.init.EXPECT().LoadState(gomock.Any(), int64(7), "alice").Return(state, nil)

	rec := serve(h.InitGameRoutes(), jsonRequest(http.MethodGet, "/game?token=tok", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := readBody(t, rec)
	assert.Contains(t, body, "Welcome, alice")
	assert.Contains(t, body, `<td id="wood">40</td>`)
	assert.Contains(t, body, `<td id="mine-level">3</td>`)
	assert.Contains(t, body, "6 gold")
	assert.Contains(t, body, "Collect resources")
	assert.Contains(t, body, `name="token" value="tok"`)
}

func TestGamePage_CooldownDisablesCollect(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.init.EXPECT().LoadState(gomock.Any(), int64(7), "alice").Return(aliceState(testNow.Add(-10*time.Minute)), nil)

	rec := serve(h.InitGameRoutes(), jsonRequest(http.MethodGet, "/game?token=tok", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := readBody(t, rec)
	assert.Contains(t, body, "Next collection at 09:50 UTC")
	assert.NotContains(t, body, "Collect resources")
}

func TestGamePage_ShowsAndClearsFlash(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.init.EXPECT().LoadState(gomock.Any(), int64(7), "alice").Return(aliceState(testNow), nil)

	req := jsonRequest(http.MethodGet, "/game?token=tok", "")
	req.AddCookie(&http.Cookie{
		Name:  flashCookieName,
		Value: url.Values{"kind": {flashWarning}, "message": {"slow down"}}.Encode(),
	})
	rec := serve(h.InitGameRoutes(), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, readBody(t, rec), `<div class="flash warning">slow down</div>`)
	cleared := flashFrom(rec)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}

func TestGamePage_TokenErrors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		h, _ := newTestHandler(t, config.GameService)

		rec := serve(h.InitGameRoutes(), jsonRequest(http.MethodGet, "/game", ""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, readBody(t, rec), "Token is required")
	})

	for name, err := range map[string]error{
		"expired":        service.ErrTokenExpired,
		"invalid":        service.ErrTokenInvalid,
		"missing claims": service.ErrTokenMissingClaims,
	} {
		t.Run(name, func(t *testing.T) {
			h, m := newTestHandler(t, config.GameService)
			m.token.EXPECT().ParseToken(gomock.Any(), "bad").Return(models.Token{}, err)

			rec := serve(h.InitGameRoutes(), jsonRequest(http.MethodGet, "/game?token=bad", ""))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := readBody(t, rec)
			assert.Contains(t, body, "Invalid or expired token")
			assert.Contains(t, body, "http://auth.test/login")
		})
	}
}

func TestGamePage_InitializationFailure(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.init.EXPECT().LoadState(gomock.Any(), int64(7), "alice").
		Return(models.GameState{}, fmt.Errorf("%w: %w", service.ErrStateNotInitialized, store.ErrBeginningTransaction))

	rec := serve(h.InitGameRoutes(), jsonRequest(http.MethodGet, "/game?token=tok", ""))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, readBody(t, rec), "Failed to initialize user game data.")
}

// ── collect page ──────────────────────────────────────────────────────────────

func TestCollectResources_Success(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.game.EXPECT().Collect(gomock.Any(), int64(7)).
		Return(models.Resources{UserID: 7, Wood: 10, Stone: 5, Gold: 2}, nil)

	rec := serve(h.InitGameRoutes(), formRequest("/collect_resources", "tok"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/game?token=tok", rec.Header().Get("Location"))
	values := flashValues(t, flashFrom(rec))
	assert.Equal(t, flashSuccess, values.Get("kind"))
	assert.Contains(t, values.Get("message"), "10 wood, 5 stone and 2 gold")
}

func TestCollectResources_TooSoon(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.game.EXPECT().Collect(gomock.Any(), int64(7)).Return(models.Resources{}, service.ErrTooSoon)

	rec := serve(h.InitGameRoutes(), formRequest("/collect_resources", "tok"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, flashWarning, flashValues(t, flashFrom(rec)).Get("kind"))
}

func TestCollectResources_StateNotFound(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.game.EXPECT().Collect(gomock.Any(), int64(7)).Return(models.Resources{}, store.ErrGameStateNotFound)

	rec := serve(h.InitGameRoutes(), formRequest("/collect_resources", "tok"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, readBody(t, rec), "User data not found")
}

func TestCollectResources_UnexpectedError(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.game.EXPECT().Collect(gomock.Any(), int64(7)).Return(models.Resources{}, errors.New("boom"))

	rec := serve(h.InitGameRoutes(), formRequest("/collect_resources", "tok"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCollectResources_RequiresFormToken(t *testing.T) {
	h, _ := newTestHandler(t, config.GameService)

	rec := serve(h.InitGameRoutes(), formRequest("/collect_resources", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ── build page ────────────────────────────────────────────────────────────────

func TestBuildPage_Success(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.game.EXPECT().Upgrade(gomock.Any(), int64(7), models.Mine).
		Return(models.Buildings{UserID: 7, SawmillLevel: 1, QuarryLevel: 1, MineLevel: 2}, nil)

	rec := serve(h.InitGameRoutes(), formRequest("/build/mine", "tok"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/game?token=tok", rec.Header().Get("Location"))
	values := flashValues(t, flashFrom(rec))
	assert.Equal(t, flashSuccess, values.Get("kind"))
	assert.Equal(t, "The mine is now level 2!", values.Get("message"))
}

func TestBuildPage_InvalidBuildingType(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)

	rec := serve(h.InitGameRoutes(), formRequest("/build/castle", "tok"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, flashError, flashValues(t, flashFrom(rec)).Get("kind"))
}

func TestBuildPage_StateNotFound(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.game.EXPECT().Upgrade(gomock.Any(), int64(7), models.Quarry).Return(models.Buildings{}, store.ErrGameStateNotFound)

	rec := serve(h.InitGameRoutes(), formRequest("/build/quarry", "tok"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ── JSON API ──────────────────────────────────────────────────────────────────

func TestAPIState(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.init.EXPECT().LoadState(gomock.Any(), int64(7), "alice").Return(aliceState(testNow.Add(-time.Hour)), nil)

	rec := serve(h.InitGameRoutes(), bearerRequest(http.MethodGet, "/api/state"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.StateResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, rec)), &resp))
	assert.True(t, resp.CanCollect)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, 1, resp.Buildings.SawmillLevel)
	assert.True(t, testNow.Equal(resp.NextCollectAt))
}

func TestAPIState_InitializationFailure(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)
	m.init.EXPECT().LoadState(gomock.Any(), int64(7), "alice").
		Return(models.GameState{}, fmt.Errorf("%w: %w", service.ErrStateNotInitialized, store.ErrGameStateNotFound))

	rec := serve(h.InitGameRoutes(), bearerRequest(http.MethodGet, "/api/state"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAPICollect(t *testing.T) {
	tests := []struct {
		name       string
		resources  models.Resources
		err        error
		wantStatus int
	}{
		{name: "collected", resources: models.Resources{UserID: 7, Wood: 10, Stone: 5, Gold: 2}, wantStatus: http.StatusOK},
		{name: "too soon", err: fmt.Errorf("%w: next collection at 10:00", service.ErrTooSoon), wantStatus: http.StatusTooManyRequests},
		{name: "lost race", err: fmt.Errorf("%w: %w", service.ErrTooSoon, store.ErrCollectConflict), wantStatus: http.StatusTooManyRequests},
		{name: "not found", err: store.ErrGameStateNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", err: store.ErrExecutingQuery, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, config.GameService)
			expectValidToken(m)
			m.game.EXPECT().Collect(gomock.Any(), int64(7)).Return(tt.resources, tt.err)

			rec := serve(h.InitGameRoutes(), bearerRequest(http.MethodPost, "/api/collect"))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				var resp models.Resources
				require.NoError(t, json.Unmarshal([]byte(readBody(t, rec)), &resp))
				assert.Equal(t, tt.resources.Wood, resp.Wood)
				assert.Equal(t, tt.resources.Gold, resp.Gold)
			}
		})
	}
}

func TestAPIBuild(t *testing.T) {
	t.Run("upgraded", func(t *testing.T) {
		h, m := newTestHandler(t, config.GameService)
		expectValidToken(m)
		m.game.EXPECT().Upgrade(gomock.Any(), int64(7), models.Sawmill).
			Return(models.Buildings{UserID: 7, SawmillLevel: 2, QuarryLevel: 1, MineLevel: 1}, nil)

		rec := serve(h.InitGameRoutes(), bearerRequest(http.MethodPost, "/api/build/sawmill"))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.Buildings
		require.NoError(t, json.Unmarshal([]byte(readBody(t, rec)), &resp))
		assert.Equal(t, 2, resp.SawmillLevel)
	})

	t.Run("invalid type never reaches the service", func(t *testing.T) {
		h, m := newTestHandler(t, config.GameService)
		expectValidToken(m)

		rec := serve(h.InitGameRoutes(), bearerRequest(http.MethodPost, "/api/build/Mine"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h, m := newTestHandler(t, config.GameService)
		expectValidToken(m)
		m.game.EXPECT().Upgrade(gomock.Any(), int64(7), models.Mine).Return(models.Buildings{}, store.ErrGameStateNotFound)

		rec := serve(h.InitGameRoutes(), bearerRequest(http.MethodPost, "/api/build/mine"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

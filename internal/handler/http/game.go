// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-realm/internal/app"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/service"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
	"github.com/go-chi/chi/v5"
)

type buildingView struct {
	Name     string
	Level    int
	Resource string
	Yield    int64
}

type gamePage struct {
	Username      string
	Token         string
	State         models.GameState
	Buildings     []buildingView
	CanCollect    bool
	NextCollectAt time.Time
	Flash         *flash
}

func newGamePage(state models.GameState, token string, now time.Time, f *flash) gamePage {
	yield := state.Buildings.Yield()
	return gamePage{
		Username: state.Username,
		Token:    token,
		State:    state,
		Buildings: []buildingView{
			{Name: models.Sawmill.String(), Level: state.Buildings.SawmillLevel, Resource: "wood", Yield: yield.Wood},
			{Name: models.Quarry.String(), Level: state.Buildings.QuarryLevel, Resource: "stone", Yield: yield.Stone},
			{Name: models.Mine.String(), Level: state.Buildings.MineLevel, Resource: "gold", Yield: yield.Gold},
		},
		CanCollect:    state.CanCollect(now),
		NextCollectAt: state.NextCollectAt(),
		Flash:         f,
	}
}

// gamePage is the entry point users land on after login. A missing state is
// initialized in-line, so the page works even when the user_created event
// never arrived.
func (h *Handler) gamePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, tokenString, err := h.pageToken(r)
	if err != nil {
		log.Err(err).Msg("game page rejected token")
		h.renderError(w, r, http.StatusUnauthorized, pageTokenMessage(err), tokenString)
		return
	}

	state, err := h.services.StateInitializer.LoadState(ctx, token.UserID, token.Username)
	if err != nil {
		log.Err(err).Int64("user_id", token.UserID).Msg("error loading game state")
		h.renderError(w, r, http.StatusInternalServerError, app.MsgStateInitFailed, tokenString)
		return
	}

	h.render(w, r, "game.html", newGamePage(state, tokenString, h.now(), popFlash(w, r)), http.StatusOK)
}

func (h *Handler) collectResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, tokenString, err := h.pageToken(r)
	if err != nil {
		log.Err(err).Msg("collect rejected token")
		h.renderError(w, r, http.StatusUnauthorized, pageTokenMessage(err), tokenString)
		return
	}

	resources, err := h.services.GameService.Collect(ctx, token.UserID)
	switch {
	case errors.Is(err, service.ErrTooSoon):
		setFlash(w, flashWarning, app.MsgCollectTooSoon)
	case errors.Is(err, store.ErrGameStateNotFound):
		log.Err(err).Int64("user_id", token.UserID).Msg("collect for missing state")
		h.renderError(w, r, http.StatusNotFound, app.MsgUserDataNotFound, tokenString)
		return
	case err != nil:
		log.Err(err).Int64("user_id", token.UserID).Msg("error collecting resources")
		h.renderError(w, r, http.StatusInternalServerError, app.MsgCollectFailed, tokenString)
		return
	default:
		setFlash(w, flashSuccess, fmt.Sprintf(app.MsgCollectedFormat,
			resources.Wood, resources.Stone, resources.Gold))
	}

	http.Redirect(w, r, gameURLFor(tokenString), http.StatusSeeOther)
}

func (h *Handler) buildPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, tokenString, err := h.pageToken(r)
	if err != nil {
		log.Err(err).Msg("build rejected token")
		h.renderError(w, r, http.StatusUnauthorized, pageTokenMessage(err), tokenString)
		return
	}

	buildingType, err := models.ParseBuildingType(chi.URLParam(r, "building_type"))
	if err != nil {
		log.Err(err).Send()
		setFlash(w, flashError, app.MsgInvalidBuildingType)
		http.Redirect(w, r, gameURLFor(tokenString), http.StatusSeeOther)
		return
	}

	buildings, err := h.services.GameService.Upgrade(ctx, token.UserID, buildingType)
	switch {
	case errors.Is(err, store.ErrGameStateNotFound):
		log.Err(err).Int64("user_id", token.UserID).Msg("upgrade for missing state")
		h.renderError(w, r, http.StatusNotFound, app.MsgUserDataNotFound, tokenString)
		return
	case err != nil:
		log.Err(err).Int64("user_id", token.UserID).Msg("error upgrading building")
		h.renderError(w, r, http.StatusInternalServerError, app.MsgUpgradeFailed, tokenString)
		return
	}

	setFlash(w, flashSuccess, fmt.Sprintf(app.MsgUpgradedFormat, buildingType, buildingType.Level(buildings)))
	http.Redirect(w, r, gameURLFor(tokenString), http.StatusSeeOther)
}

func (h *Handler) gameLogout(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.authURL+loginPath, http.StatusFound)
}

func pageTokenMessage(err error) string {
	if errors.Is(err, ErrMissingToken) {
		return app.MsgTokenRequired
	}
	return app.MsgInvalidOrExpiredToken
}

// ── JSON API ──────────────────────────────────────────────────────────────────

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)
	username, _ := utils.GetUsernameFromContext(ctx)

	state, err := h.services.StateInitializer.LoadState(ctx, userID, username)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error loading game state")
		utils.WriteJSONError(w, app.MsgStateInitFailed, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.StateResponse{
		GameState:     state,
		CanCollect:    state.CanCollect(h.now()),
		NextCollectAt: state.NextCollectAt(),
	}, http.StatusOK)
}

func (h *Handler) collect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	resources, err := h.services.GameService.Collect(ctx, userID)
	if err != nil {
		status := statusFromError(err)
		switch status {
		case http.StatusTooManyRequests:
			log.Debug().Int64("user_id", userID).Msg("collect before cooldown")
			utils.WriteJSONError(w, service.ErrTooSoon.Error(), status)
		case http.StatusNotFound:
			log.Err(err).Int64("user_id", userID).Send()
			utils.WriteJSONError(w, store.ErrGameStateNotFound.Error(), status)
		default:
			log.Err(err).Int64("user_id", userID).Msg("error collecting resources")
			utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, resources, http.StatusOK)
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(ctx)

	buildingType, err := models.ParseBuildingType(chi.URLParam(r, "building_type"))
	if err != nil {
		log.Err(err).Send()
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	buildings, err := h.services.GameService.Upgrade(ctx, userID, buildingType)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusNotFound {
			log.Err(err).Int64("user_id", userID).Send()
			utils.WriteJSONError(w, store.ErrGameStateNotFound.Error(), status)
			return
		}
		log.Err(err).Int64("user_id", userID).Msg("error upgrading building")
		utils.WriteJSONError(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, buildings, http.StatusOK)
}

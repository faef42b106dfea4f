// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

// Labels of the source of an initialization in metrics.
const (
	sourceConsumer = "consumer"
	sourceFallback = "fallback"
)

type stateInitializer struct {
	gameStateRepository store.GameStateRepository

	now    func() time.Time
	logger *logger.Logger
}

// NewStateInitializer constructs the StateInitializer of the game service.
func NewStateInitializer(gameStateRepository store.GameStateRepository, logger *logger.Logger) StateInitializer {
	return &stateInitializer{
		gameStateRepository: gameStateRepository,
		now:                 time.Now,
		logger:              logger,
	}
}

// EnsureState guarantees that both records of userID exist.
//
// Present records are never modified. Missing ones are created with default
// values by conditional inserts in one transaction, so any number of
// concurrent calls for the same user yields exactly one set of records.
func (s *stateInitializer) EnsureState(ctx context.Context, userID int64, username string) (models.InitOutcome, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "stateInitializer.EnsureState").
		Int64("user_id", userID).
		Str("username", username).
		Logger()

	if userID <= 0 {
		return models.InitExisting, ErrInvalidDataProvided
	}

	_, err := s.gameStateRepository.GetState(ctx, userID)
	switch {
	case err == nil:
		return models.InitExisting, nil
	case !errors.Is(err, store.ErrGameStateNotFound):
		log.Err(err).Msg("failed to read game state")
		return models.InitExisting, fmt.Errorf("error reading game state: %w", err)
	}

	result, err := s.gameStateRepository.InitState(ctx, models.NewGameState(userID, s.now().UTC()))
	if err != nil {
		log.Err(err).Msg("failed to initialize game state")
		return models.InitExisting, fmt.Errorf("error initializing game state: %w", err)
	}

	switch {
	case result.ResourcesCreated && result.BuildingsCreated:
		log.Info().Msg("game state created")
		return models.InitCreated, nil
	case result.ResourcesCreated || result.BuildingsCreated:
		log.Warn().
			Bool("resources_created", result.ResourcesCreated).
			Bool("buildings_created", result.BuildingsCreated).
			Msg("inconsistent game state: one record was missing, repaired")
		return models.InitRepaired, nil
	default:
		log.Debug().Msg("game state was created concurrently")
		return models.InitExisting, nil
	}
}

// HandleUserCreated initializes the state announced by a user_created event.
// Any error is returned so the consumer discards the message; the fallback
// path covers the user later.
func (s *stateInitializer) HandleUserCreated(ctx context.Context, event models.UserCreatedEvent) error {
	if err := event.Validate(); err != nil {
		metrics.StateInitTotal.WithLabelValues(sourceConsumer, metrics.ResultError).Inc()
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	outcome, err := s.EnsureState(ctx, event.UserID, event.Username)
	if err != nil {
		metrics.StateInitTotal.WithLabelValues(sourceConsumer, metrics.ResultError).Inc()
		return err
	}

	metrics.StateInitTotal.WithLabelValues(sourceConsumer, outcome.String()).Inc()
	logger.FromContext(ctx).Info().
		Str("func", "stateInitializer.HandleUserCreated").
		Int64("user_id", event.UserID).
		Stringer("outcome", outcome).
		Msg("user_created event handled")

	return nil
}

// LoadState returns the game state of an authenticated user, creating it when
// the user_created event was lost or has not been consumed yet. The state is
// re-read after initialization; any failure yields ErrStateNotInitialized.
func (s *stateInitializer) LoadState(ctx context.Context, userID int64, username string) (models.GameState, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "stateInitializer.LoadState").
		Int64("user_id", userID).
		Logger()

	state, err := s.gameStateRepository.GetState(ctx, userID)
	if err == nil {
		state.Username = username
		return state, nil
	}
	if !errors.Is(err, store.ErrGameStateNotFound) {
		log.Err(err).Msg("failed to read game state")
		return models.GameState{}, fmt.Errorf("%w: %w", ErrStateNotInitialized, err)
	}

	log.Warn().Msg("game state missing on visit, initializing")

	outcome, err := s.EnsureState(ctx, userID, username)
	if err != nil {
		metrics.StateInitTotal.WithLabelValues(sourceFallback, metrics.ResultError).Inc()
		return models.GameState{}, fmt.Errorf("%w: %w", ErrStateNotInitialized, err)
	}
	metrics.StateInitTotal.WithLabelValues(sourceFallback, outcome.String()).Inc()

	state, err = s.gameStateRepository.GetState(ctx, userID)
	if err != nil {
		log.Err(err).Stringer("outcome", outcome).Msg("game state still unreadable after initialization")
		return models.GameState{}, fmt.Errorf("%w: %w", ErrStateNotInitialized, err)
	}

	state.Username = username
	return state, nil
}

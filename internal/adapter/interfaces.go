// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the realm JSON API.
//
// [RealmClient] talks to both services: registration and login go to the
// auth service, game actions go to the game service with the bearer token
// obtained at login. Non-2xx responses are mapped onto the sentinel errors in
// errors.go so callers can use [errors.Is] (e.g. [ErrTooManyRequests] for a
// collection inside the cooldown).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-realm/models"
)

// RealmClient drives the public API of the auth and game services.
type RealmClient interface {
	// SetToken stores the bearer token used by the game calls.
	SetToken(token string)

	// Token returns the stored bearer token, or "" before Login.
	Token() string

	// Register creates an account. It does not log in.
	Register(ctx context.Context, credentials models.Credentials) (models.RegisterResponse, error)

	// Login authenticates and stores the returned token via SetToken.
	Login(ctx context.Context, credentials models.Credentials) (models.LoginResponse, error)

	// State returns the game state, initializing it on the server if needed.
	State(ctx context.Context) (models.StateResponse, error)

	// Collect collects resources. Inside the cooldown it fails with
	// [ErrTooManyRequests].
	Collect(ctx context.Context) (models.Resources, error)

	// Build upgrades one building by a level.
	Build(ctx context.Context, buildingType models.BuildingType) (models.Buildings, error)
}

package service

import (
	"errors"

	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/internal/utils"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")

	ErrTokenCreationFailed = errors.New("token creation failed")

	// Token verification failure kinds. Callers treat all three as
	// unauthenticated; they differ only in logs.
	ErrTokenInvalid       = utils.ErrTokenInvalid
	ErrTokenExpired       = utils.ErrTokenExpired
	ErrTokenMissingClaims = utils.ErrTokenMissingClaims

	ErrTooSoon             = errors.New("resources can be collected once per hour")
	ErrStateNotInitialized = errors.New("game state could not be initialized")

	// ErrUsernameTaken, ErrGameStateNotFound are re-exported so transport code
	// does not depend on the storage package for error matching.
	ErrUsernameTaken     = store.ErrUsernameTaken
	ErrGameStateNotFound = store.ErrGameStateNotFound

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

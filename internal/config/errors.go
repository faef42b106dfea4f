package config

import "errors"

// Validation errors returned when a merged configuration is incomplete.
var (
	// ErrInvalidAppConfigs indicates missing token settings
	// (for example, an empty sign key or a non-positive token duration).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN or an unsupported driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidQueueConfigs indicates missing broker settings.
	ErrInvalidQueueConfigs = errors.New("invalid queue configuration")
	// ErrInvalidServicesConfigs indicates a missing cross-service URL.
	ErrInvalidServicesConfigs = errors.New("invalid services configuration")
	// ErrUnknownService is returned for a [Service] other than auth or game.
	ErrUnknownService = errors.New("unknown service")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] has everything the
// given service needs before it is used at startup.
func (cfg *StructuredConfig) validate(service Service) error {
	if service != AuthService && service != GameService {
		return fmt.Errorf("%w: %q", ErrUnknownService, service)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if service == AuthService && cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Queue.URL == "" || cfg.Queue.UserCreated == "" {
		return fmt.Errorf("%w: URL and queue name are required", ErrInvalidQueueConfigs)
	}
	if service == GameService && (cfg.Queue.ReconnectDelay <= 0 || cfg.Queue.HandlerTimeout <= 0 || cfg.Queue.StartupDelay < 0) {
		return fmt.Errorf("%w: consumer delays must be positive", ErrInvalidQueueConfigs)
	}

	if service == AuthService && cfg.Services.GameURL == "" {
		return fmt.Errorf("%w: game URL is required", ErrInvalidServicesConfigs)
	}
	if service == GameService && cfg.Services.AuthURL == "" {
		return fmt.Errorf("%w: auth URL is required", ErrInvalidServicesConfigs)
	}

	return nil
}

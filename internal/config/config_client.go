package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// ClientConfig holds the settings of the realm-cli command line client.
type ClientConfig struct {
	// AuthURL is the base URL of the auth service.
	AuthURL string `env:"SERVICES_AUTH_URL"`
	// GameURL is the base URL of the game service.
	GameURL string `env:"SERVICES_GAME_URL"`
	// RequestTimeout is the timeout for every outbound request.
	RequestTimeout time.Duration `env:"CLIENT_REQUEST_TIMEOUT"`
}

// ErrInvalidClientConfigs indicates a missing URL or timeout in the client config.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// GetClientConfig builds the client configuration from the environment and
// the leading flags of args. It returns the arguments left after the flags,
// which carry the command to run.
//
// Flags:
//
//	-auth-url base URL of the auth service
//	-game-url base URL of the game service
//	-timeout  request timeout
func GetClientConfig(name string, args []string) (*ClientConfig, []string, error) {
	if err := loadDotEnv(); err != nil {
		return nil, nil, err
	}

	cfg := &ClientConfig{
		AuthURL:        "http://localhost:5000",
		GameURL:        "http://localhost:5001",
		RequestTimeout: 10 * time.Second,
	}
	if err := parseEnv(cfg); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.AuthURL, "auth-url", cfg.AuthURL, "Auth service base URL")
	fs.StringVar(&cfg.GameURL, "game-url", cfg.GameURL, "Game service base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Request timeout")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return cfg, fs.Args(), cfg.validate()
}

func (cfg *ClientConfig) validate() error {
	if cfg.AuthURL == "" || cfg.GameURL == "" {
		return fmt.Errorf("%w: service URLs are required", ErrInvalidClientConfigs)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidClientConfigs)
	}

	return nil
}

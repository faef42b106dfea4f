package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
	"github.com/go-resty/resty/v2"
)

type httpRealmClient struct {
	auth *utils.HTTPClient
	game *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPRealmClient returns a [RealmClient] for the service URLs in cfg.
// Addresses without a scheme are treated as http.
func NewHTTPRealmClient(cfg config.ClientConfig, logger *logger.Logger) (RealmClient, error) {
	authURL, err := normalizeBaseURL(cfg.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("invalid auth service address: %w", err)
	}
	gameURL, err := normalizeBaseURL(cfg.GameURL)
	if err != nil {
		return nil, fmt.Errorf("invalid game service address: %w", err)
	}

	return &httpRealmClient{
		auth:   utils.NewHTTPClient(authURL, cfg.RequestTimeout),
		game:   utils.NewHTTPClient(gameURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRealmClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpRealmClient) Token() string {
	return h.token
}

// Register implements [RealmClient] via POST /api/register on the auth service.
func (h *httpRealmClient) Register(ctx context.Context, credentials models.Credentials) (models.RegisterResponse, error) {
	var result models.RegisterResponse

	resp, err := h.auth.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&result).
		Post("/api/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return result, nil
}

// Login implements [RealmClient] via POST /api/login on the auth service.
func (h *httpRealmClient) Login(ctx context.Context, credentials models.Credentials) (models.LoginResponse, error) {
	var result models.LoginResponse

	resp, err := h.auth.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&result).
		Post("/api/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}
	if result.AccessToken == "" {
		return models.LoginResponse{}, fmt.Errorf("login response carries no access token")
	}

	h.SetToken(result.AccessToken)
	h.logger.Debug().Str("username", credentials.Username).Msg("logged in")
	return result, nil
}

// State implements [RealmClient] via GET /api/state on the game service.
func (h *httpRealmClient) State(ctx context.Context) (models.StateResponse, error) {
	var result models.StateResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return result, err
	}

	resp, err := req.SetResult(&result).Get("/api/state")
	if err != nil {
		return models.StateResponse{}, fmt.Errorf("state request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StateResponse{}, err
	}

	return result, nil
}

// Collect implements [RealmClient] via POST /api/collect on the game service.
func (h *httpRealmClient) Collect(ctx context.Context) (models.Resources, error) {
	var result models.Resources

	req, err := h.authedRequest(ctx)
	if err != nil {
		return result, err
	}

	resp, err := req.SetResult(&result).Post("/api/collect")
	if err != nil {
		return models.Resources{}, fmt.Errorf("collect request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Resources{}, err
	}

	return result, nil
}

// Build implements [RealmClient] via POST /api/build/{building_type} on the
// game service.
func (h *httpRealmClient) Build(ctx context.Context, buildingType models.BuildingType) (models.Buildings, error) {
	var result models.Buildings

	req, err := h.authedRequest(ctx)
	if err != nil {
		return result, err
	}

	resp, err := req.
		SetResult(&result).
		SetPathParam("building_type", buildingType.String()).
		Post("/api/build/{building_type}")
	if err != nil {
		return models.Buildings{}, fmt.Errorf("build request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Buildings{}, err
	}

	return result, nil
}

func (h *httpRealmClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	if h.token == "" {
		return nil, ErrNoToken
	}

	return h.game.R().
		SetContext(ctx).
		SetAuthToken(h.token), nil
}

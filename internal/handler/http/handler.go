package http

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler serves the HTTP surface of one realm service.
type Handler struct {
	services *service.Services

	service        config.Service
	authURL        string
	gameURL        string
	requestTimeout time.Duration
	pages          *template.Template
	now            func() time.Time

	logger *logger.Logger
}

// NewHandler parses the page templates and returns a Handler for the given
// service. The router is obtained from InitAuthRoutes or InitGameRoutes.
func NewHandler(svc config.Service, services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	pages, err := template.New("pages").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing page templates: %w", err)
	}

	logger.Info().Str("service", string(svc)).Msg("http handler created")
	return &Handler{
		services:       services,
		service:        svc,
		authURL:        strings.TrimRight(cfg.Services.AuthURL, "/"),
		gameURL:        strings.TrimRight(cfg.Services.GameURL, "/"),
		requestTimeout: cfg.Server.RequestTimeout,
		pages:          pages,
		now:            time.Now,
		logger:         logger,
	}, nil
}

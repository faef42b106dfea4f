// Command auth-server runs the registration and login service.
package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-realm/internal/config"
	handler "github.com/MKhiriev/go-realm/internal/handler/http"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/queue"
	"github.com/MKhiriev/go-realm/internal/server"
	"github.com/MKhiriev/go-realm/internal/service"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/internal/workers"
	"github.com/MKhiriev/go-realm/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger(string(config.AuthService))
	if err := run(buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("auth-server stopped")
	}
}

func run(buildInfo models.AppBuildInfo, log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig(config.AuthService)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	ctx := context.Background()
	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err = db.MigrateAuth(ctx); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	publisher := queue.NewPublisher(cfg.Queue, log)
	defer publisher.Close()

	services, err := service.NewAuthServices(store.NewAuthStorages(db, log), publisher, cfg, buildInfo, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	h, err := handler.NewHandler(config.AuthService, services, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating http handler: %w", err)
	}

	srv, err := server.NewServer(h.InitAuthRoutes(), workers.New(), cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer()
}

func printBuildInfo(buildInfo models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", buildInfo.BuildVersion())
	fmt.Printf("Build date: %s\n", buildInfo.BuildDate())
	fmt.Printf("Build commit: %s\n", buildInfo.BuildCommit())
}

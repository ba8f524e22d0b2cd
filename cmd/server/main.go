package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/events"
	"github.com/MKhiriev/go-family-finance/internal/handler"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/server"
	"github.com/MKhiriev/go-family-finance/internal/service"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/workers"
	"github.com/MKhiriev/go-family-finance/models"
	"golang.org/x/sync/errgroup"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("finance-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	publisher := events.NewPublisher(cfg.Events, log)
	defer publisher.Close()

	storages := store.NewStorages(db, log)

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, publisher, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.UserService.EnsureDefaultAdmin(ctx, cfg.App.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("error creating default admin")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.RunServer(gCtx)
	})
	g.Go(func() error {
		return workers.NewWorkers(services, cfg.Workers, log).Run(gCtx)
	})

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}

	log.Info().Msg("finance server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

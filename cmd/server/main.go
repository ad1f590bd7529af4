package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/handler"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/server"
	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/workers"
	"github.com/MKhiriev/escrow-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("escrow-api")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping debug")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	var categories store.CategoryCache
	if cfg.Storage.Redis.Address != "" {
		rdb, err := store.NewConnectRedis(ctx, cfg.Storage.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to redis")
		}
		defer rdb.Close()
		categories = store.NewRedisCategoryCache(rdb, cfg.Storage.Redis.CategoriesTTL)
	}

	services, err := service.NewServices(store.NewStorages(db, categories, log), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers, err := workers.NewWorkers(services, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}
	bgWorkers.Run()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	runErr := srv.RunServer(ctx)

	stopCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err = bgWorkers.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("error stopping workers")
	}

	if runErr != nil {
		log.Error().Err(runErr).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

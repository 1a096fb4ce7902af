package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/smarthealthcare/internal/api/handlers"
	"github.com/zatekoja/smarthealthcare/internal/api/routes"
	"github.com/zatekoja/smarthealthcare/internal/application/services"
	"github.com/zatekoja/smarthealthcare/internal/bootstrap"
	"github.com/zatekoja/smarthealthcare/internal/graphql"
	"github.com/zatekoja/smarthealthcare/internal/graphql/schema"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	metrics, flush := bootstrap.Telemetry(ctx, cfg, "patient")
	defer flush()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer storage.Close()

	repo := storage.Patients()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure patient schema")
	}

	service := services.NewPatientService(repo)

	gqlSchema, err := schema.NewPatientSchema(service)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build GraphQL schema")
	}

	router := routes.NewRouter(
		routes.WithPatients(handlers.NewPatientHandler(service)),
		routes.WithGraphQL(graphql.NewHandler(gqlSchema)),
		routes.WithHealth(handlers.NewHealthHandler("Patient Service", cfg.Server.PatientPort)),
		routes.WithMetrics(metrics),
		routes.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
	)

	if err := bootstrap.Serve(ctx, cfg.Server.ListenAddr(cfg.Server.PatientPort), router.SetupRoutes()); err != nil {
		log.Error().Err(err).Msg("patient service stopped")
	}
}

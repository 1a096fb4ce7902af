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
	metrics, flush := bootstrap.Telemetry(ctx, cfg, "doctor")
	defer flush()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer storage.Close()

	repo := storage.Doctors()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure doctor schema")
	}

	service := services.NewDoctorService(repo)

	gqlSchema, err := schema.NewDoctorSchema(service)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build GraphQL schema")
	}

	router := routes.NewRouter(
		routes.WithDoctors(handlers.NewDoctorHandler(service)),
		routes.WithGraphQL(graphql.NewHandler(gqlSchema)),
		routes.WithHealth(handlers.NewHealthHandler("Doctor Service", cfg.Server.DoctorPort)),
		routes.WithMetrics(metrics),
		routes.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
	)

	if err := bootstrap.Serve(ctx, cfg.Server.ListenAddr(cfg.Server.DoctorPort), router.SetupRoutes()); err != nil {
		log.Error().Err(err).Msg("doctor service stopped")
	}
}

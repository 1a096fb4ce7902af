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
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/serviceapi"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	metrics, flush := bootstrap.Telemetry(ctx, cfg, "appointment")
	defer flush()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer storage.Close()

	repo := storage.Appointments()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure appointment schema")
	}

	// Appointments only reference patients and doctors
	validator := services.NewReferenceValidator(
		serviceapi.NewPatientLookup(cfg.Services.PatientURL, cfg.Lookup.Timeout),
		serviceapi.NewDoctorLookup(cfg.Services.DoctorURL, cfg.Lookup.Timeout),
		nil,
	)
	service := services.NewAppointmentService(repo, validator)

	gqlSchema, err := schema.NewAppointmentSchema(service)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build GraphQL schema")
	}

	router := routes.NewRouter(
		routes.WithAppointments(handlers.NewAppointmentHandler(service)),
		routes.WithGraphQL(graphql.NewHandler(gqlSchema)),
		routes.WithHealth(handlers.NewHealthHandler("Appointment Service", cfg.Server.AppointmentPort)),
		routes.WithMetrics(metrics),
		routes.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
	)

	if err := bootstrap.Serve(ctx, cfg.Server.ListenAddr(cfg.Server.AppointmentPort), router.SetupRoutes()); err != nil {
		log.Error().Err(err).Msg("appointment service stopped")
	}
}

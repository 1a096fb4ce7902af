package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/smarthealthcare/internal/api/handlers"
	"github.com/zatekoja/smarthealthcare/internal/api/routes"
	"github.com/zatekoja/smarthealthcare/internal/application/services"
	"github.com/zatekoja/smarthealthcare/internal/bootstrap"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/serviceapi"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	metrics, flush := bootstrap.Telemetry(ctx, cfg, "medical-record")
	defer flush()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer storage.Close()

	repo := storage.MedicalRecords()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure medical record schema")
	}

	validator := services.NewReferenceValidator(
		serviceapi.NewPatientLookup(cfg.Services.PatientURL, cfg.Lookup.Timeout),
		serviceapi.NewDoctorLookup(cfg.Services.DoctorURL, cfg.Lookup.Timeout),
		serviceapi.NewAppointmentLookup(cfg.Services.AppointmentURL, cfg.Lookup.Timeout),
	)
	service := services.NewMedicalRecordService(repo, validator)

	router := routes.NewRouter(
		routes.WithMedicalRecords(handlers.NewMedicalRecordHandler(service)),
		routes.WithHealth(handlers.NewHealthHandler("Medical Record Service", cfg.Server.MedicalRecordPort)),
		routes.WithMetrics(metrics),
		routes.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
	)

	if err := bootstrap.Serve(ctx, cfg.Server.ListenAddr(cfg.Server.MedicalRecordPort), router.SetupRoutes()); err != nil {
		log.Error().Err(err).Msg("medical record service stopped")
	}
}

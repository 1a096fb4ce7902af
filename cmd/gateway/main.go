package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/smarthealthcare/internal/bootstrap"
	"github.com/zatekoja/smarthealthcare/internal/gateway"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	metrics, flush := bootstrap.Telemetry(ctx, cfg, "gateway")
	defer flush()

	g, err := gateway.New(cfg.Services, gateway.Options{
		Version:        cfg.OTEL.ServiceVersion,
		Port:           cfg.Server.GatewayPort,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        metrics,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure gateway")
	}

	log.Info().
		Str("patients", cfg.Services.PatientURL).
		Str("doctors", cfg.Services.DoctorURL).
		Str("appointments", cfg.Services.AppointmentURL).
		Str("records", cfg.Services.MedicalRecordURL).
		Msg("upstream services")

	if err := bootstrap.Serve(ctx, cfg.Server.ListenAddr(cfg.Server.GatewayPort), g.Handler()); err != nil {
		log.Error().Err(err).Msg("gateway stopped")
	}
}

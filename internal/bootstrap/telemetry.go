// Package bootstrap holds the process wiring shared by every cmd binary.
package bootstrap

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

// Telemetry initializes logging, trace propagation and, when enabled, the
// OpenTelemetry exporters. The returned func flushes the exporters.
func Telemetry(ctx context.Context, cfg *config.Config, component string) (*observability.Metrics, func()) {
	serviceName := cfg.OTEL.ServiceName + "-" + component
	observability.InitLogger(serviceName, cfg.Env, cfg.LogLevel)
	observability.SetupPropagation()

	log.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage.Backend).
		Msg("starting " + component)

	flush := func() {}
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, serviceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
			flush = func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize metrics")
	}

	return metrics, flush
}

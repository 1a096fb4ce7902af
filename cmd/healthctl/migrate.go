package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zatekoja/smarthealthcare/internal/bootstrap"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables and indexes of the configured storage backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _ := cmd.Flags().GetString("service")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			storage, err := bootstrap.OpenStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer storage.Close()

			return migrate(cmd.Context(), storage, service)
		},
	}
	cmd.Flags().String("service", "all", "Service whose store to migrate: patient, doctor, appointment, record or all")
	return cmd
}

func migrate(ctx context.Context, storage *bootstrap.Storage, service string) error {
	stores := []struct {
		name  string
		store schemaEnsurer
	}{
		{"patient", storage.Patients()},
		{"doctor", storage.Doctors()},
		{"appointment", storage.Appointments()},
		{"record", storage.MedicalRecords()},
	}

	matched := false
	for _, s := range stores {
		if service != "all" && service != s.name {
			continue
		}
		matched = true
		if err := s.store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
		log.Info().Str("service", s.name).Str("backend", storage.Backend()).Msg("schema ready")
	}

	if !matched {
		return fmt.Errorf("unknown service %q", service)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/zatekoja/smarthealthcare/pkg/config"
	"github.com/zatekoja/smarthealthcare/pkg/retry"
)

type healthReport struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Port    int    `json:"port"`
}

type target struct {
	name string
	url  string
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Poll /health on the gateway and every entity service",
		RunE: func(cmd *cobra.Command, args []string) error {
			wait, _ := cmd.Flags().GetDuration("wait")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			failed := 0
			for _, t := range targets(cfg) {
				report, err := pollHealth(cmd.Context(), http.DefaultClient, t.url, wait)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%-14s DOWN     %s\n", t.name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-8s %s (port %d)\n", t.name, report.Status, report.Service, report.Port)
			}

			if failed > 0 {
				return fmt.Errorf("%d service(s) unhealthy", failed)
			}
			return nil
		},
	}
	cmd.Flags().Duration("wait", 10*time.Second, "How long to keep retrying each service")
	return cmd
}

func targets(cfg *config.Config) []target {
	return []target{
		{"gateway", "http://localhost:" + strconv.Itoa(cfg.Server.GatewayPort)},
		{"patient", cfg.Services.PatientURL},
		{"doctor", cfg.Services.DoctorURL},
		{"appointment", cfg.Services.AppointmentURL},
		{"medical-record", cfg.Services.MedicalRecordURL},
	}
}

// pollHealth retries GET {baseURL}/health until it reports running or wait elapses
func pollHealth(ctx context.Context, client *http.Client, baseURL string, wait time.Duration) (*healthReport, error) {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = 0
	retryCfg.MaxDelay = time.Second
	retryCfg.MaxTotalTimeout = wait
	if wait <= 0 {
		retryCfg.MaxAttempts = 1
	}

	var report healthReport
	err := retry.Do(ctx, retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			return fmt.Errorf("malformed health report: %w", err)
		}
		if report.Status != "running" {
			return fmt.Errorf("status %q", report.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

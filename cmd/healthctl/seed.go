package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create sample patients, doctors, appointments and records through the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			gatewayURL, _ := cmd.Flags().GetString("gateway")
			if gatewayURL == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				gatewayURL = "http://localhost:" + strconv.Itoa(cfg.Server.GatewayPort)
			}

			summary, err := newSeeder(gatewayURL, http.DefaultClient).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d patients, %d doctors, %d appointments, %d records\n",
				summary.Patients, summary.Doctors, summary.Appointments, summary.Records)
			return nil
		},
	}
	cmd.Flags().String("gateway", "", "Gateway base URL (default http://localhost:$GATEWAY_PORT)")
	return cmd
}

type seedSummary struct {
	Patients     int
	Doctors      int
	Appointments int
	Records      int
}

type seeder struct {
	baseURL string
	client  *http.Client
}

func newSeeder(baseURL string, client *http.Client) *seeder {
	return &seeder{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

var samplePatients = []map[string]interface{}{
	{"name": "Budi Santoso", "birth_date": "1985-03-14", "gender": "male", "phone": "081234567801", "address": "Jl. Sudirman 10, Jakarta", "blood_type": "O+"},
	{"name": "Siti Aminah", "birth_date": "1992-07-21", "gender": "female", "phone": "081234567802", "address": "Jl. Asia Afrika 5, Bandung", "blood_type": "A+"},
	{"name": "Andi Wijaya", "birth_date": "1978-11-02", "gender": "male", "phone": "081234567803", "blood_type": "B-"},
}

var sampleDoctors = []map[string]interface{}{
	{"name": "Dr. Rina Kusuma", "specialization": "Cardiology", "phone": "082100000001", "schedule": []string{"Monday 09:00-12:00", "Thursday 13:00-16:00"}},
	{"name": "Dr. Hendra Gunawan", "specialization": "Pediatrics", "phone": "082100000002", "schedule": []string{"Tuesday 08:00-11:00"}},
}

// Run creates the sample data in dependency order: people first, then
// appointments that reference them, then records for each appointment.
func (s *seeder) Run(ctx context.Context) (*seedSummary, error) {
	summary := &seedSummary{}

	patientIDs := make([]string, 0, len(samplePatients))
	for _, p := range samplePatients {
		id, err := s.create(ctx, "/api/patients", p)
		if err != nil {
			return summary, fmt.Errorf("seed patient %v: %w", p["name"], err)
		}
		patientIDs = append(patientIDs, id)
		summary.Patients++
	}

	doctorIDs := make([]string, 0, len(sampleDoctors))
	for _, d := range sampleDoctors {
		id, err := s.create(ctx, "/api/doctors", d)
		if err != nil {
			return summary, fmt.Errorf("seed doctor %v: %w", d["name"], err)
		}
		doctorIDs = append(doctorIDs, id)
		summary.Doctors++
	}

	for i, patientID := range patientIDs {
		doctorID := doctorIDs[i%len(doctorIDs)]
		appointmentID, err := s.create(ctx, "/api/appointments", map[string]interface{}{
			"patient_id":       patientID,
			"doctor_id":        doctorID,
			"appointment_date": fmt.Sprintf("2025-01-%02d 09:00", 10+i),
			"complaint":        "Routine check-up",
		})
		if err != nil {
			return summary, fmt.Errorf("seed appointment: %w", err)
		}
		summary.Appointments++

		if _, err := s.create(ctx, "/api/records", map[string]interface{}{
			"patient_id":     patientID,
			"doctor_id":      doctorID,
			"appointment_id": appointmentID,
			"diagnosis":      "Healthy",
			"notes":          "Seeded record",
		}); err != nil {
			return summary, fmt.Errorf("seed record: %w", err)
		}
		summary.Records++
	}

	log.Info().
		Int("patients", summary.Patients).
		Int("doctors", summary.Doctors).
		Int("appointments", summary.Appointments).
		Int("records", summary.Records).
		Msg("seed complete")
	return summary, nil
}

type createResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (s *seeder) create(ctx context.Context, path string, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("POST %s: status %d with undecodable body: %w", path, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusCreated || !out.Success {
		return "", fmt.Errorf("POST %s: status %d: %s %s", path, resp.StatusCode, out.Message, out.Error)
	}
	return out.Data.ID, nil
}

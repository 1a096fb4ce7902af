package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
)

// PatientService handles patient registration and maintenance
type PatientService struct {
	repo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(repo repositories.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// List returns all patients, newest first
func (s *PatientService) List(ctx context.Context) ([]*entities.Patient, error) {
	return s.repo.List(ctx)
}

// Get returns one patient
func (s *PatientService) Get(ctx context.Context, id string) (*entities.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// SearchByName returns patients whose name contains name
func (s *PatientService) SearchByName(ctx context.Context, name string) ([]*entities.Patient, error) {
	return s.repo.SearchByName(ctx, name)
}

// Create validates and stores a new patient
func (s *PatientService) Create(ctx context.Context, input entities.PatientInput) (*entities.Patient, error) {
	patient := &entities.Patient{}
	input.ApplyTo(patient)
	if err := validate(patient.Validate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	patient.ID = uuid.New().String()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Str("patient_id", patient.ID).Msg("patient created")
	return patient, nil
}

// Update merges the provided fields into an existing patient
func (s *PatientService) Update(ctx context.Context, id string, input entities.PatientInput) (*entities.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.ApplyTo(patient)
	if err := validate(patient.Validate); err != nil {
		return nil, err
	}
	patient.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Delete removes a patient. Appointments and records pointing at it are left as they are.
func (s *PatientService) Delete(ctx context.Context, id string) (*entities.Patient, error) {
	return s.repo.Delete(ctx, id)
}

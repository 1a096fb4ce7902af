package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
)

// DoctorService handles doctor profiles and schedules
type DoctorService struct {
	repo repositories.DoctorRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(repo repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repo: repo}
}

func (s *DoctorService) List(ctx context.Context) ([]*entities.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *DoctorService) Get(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) SearchBySpecialization(ctx context.Context, specialization string) ([]*entities.Doctor, error) {
	return s.repo.SearchBySpecialization(ctx, specialization)
}

// Create validates and stores a new doctor
func (s *DoctorService) Create(ctx context.Context, input entities.DoctorInput) (*entities.Doctor, error) {
	doctor := &entities.Doctor{}
	input.ApplyTo(doctor)
	if err := validate(doctor.Validate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doctor.ID = uuid.New().String()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Str("doctor_id", doctor.ID).Msg("doctor created")
	return doctor, nil
}

// Update merges the provided fields into an existing doctor
func (s *DoctorService) Update(ctx context.Context, id string, input entities.DoctorInput) (*entities.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.ApplyTo(doctor)
	if err := validate(doctor.Validate); err != nil {
		return nil, err
	}
	doctor.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *DoctorService) Delete(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.repo.Delete(ctx, id)
}

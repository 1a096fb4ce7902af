package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

// AppointmentService handles appointment booking and status changes
type AppointmentService struct {
	repo      repositories.AppointmentRepository
	validator *ReferenceValidator
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository, validator *ReferenceValidator) *AppointmentService {
	return &AppointmentService{
		repo:      repo,
		validator: validator,
	}
}

func (s *AppointmentService) List(ctx context.Context) ([]*entities.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// Create books an appointment after confirming the patient and doctor exist.
// Date and status are checked only once both references resolve.
// Status defaults to pending.
func (s *AppointmentService) Create(ctx context.Context, input entities.AppointmentInput) (*entities.Appointment, error) {
	appointment := &entities.Appointment{Status: entities.AppointmentStatusPending}
	input.ApplyTo(appointment)
	if appointment.Status == "" {
		appointment.Status = entities.AppointmentStatusPending
	}
	if err := validate(appointment.ValidateReferences); err != nil {
		return nil, err
	}

	err := s.validator.Validate(ctx, Refs{
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
	})
	if err != nil {
		return nil, err
	}
	if err := validate(appointment.Validate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	appointment.ID = uuid.New().String()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", appointment.ID).
		Str("patient_id", appointment.PatientID).
		Str("doctor_id", appointment.DoctorID).
		Msg("appointment created")
	return appointment, nil
}

// Update merges the provided fields. Changed patient or doctor ids are stored
// without checking that they exist.
func (s *AppointmentService) Update(ctx context.Context, id string, input entities.AppointmentInput) (*entities.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.ApplyTo(appointment)
	if err := validate(appointment.Validate); err != nil {
		return nil, err
	}
	appointment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// UpdateStatus sets any of the four statuses regardless of the current one.
// Changes the lifecycle does not describe are logged, not refused.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, status string) (*entities.Appointment, error) {
	next := entities.AppointmentStatus(status)
	if !next.IsValid() {
		return nil, apperrors.NewValidationError(entities.InvalidStatusMessage)
	}

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status != next && !appointment.Status.CanTransitionTo(next) {
		observability.LoggerFromContext(ctx).Warn().
			Str("appointment_id", appointment.ID).
			Str("from", string(appointment.Status)).
			Str("to", string(next)).
			Msg("appointment status change outside the usual lifecycle")
	}

	appointment.Status = next
	appointment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.repo.Delete(ctx, id)
}

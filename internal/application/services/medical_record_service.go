package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
)

// MedicalRecordService handles diagnoses written against patients
type MedicalRecordService struct {
	repo      repositories.MedicalRecordRepository
	validator *ReferenceValidator
}

// NewMedicalRecordService creates a new medical record service
func NewMedicalRecordService(repo repositories.MedicalRecordRepository, validator *ReferenceValidator) *MedicalRecordService {
	return &MedicalRecordService{
		repo:      repo,
		validator: validator,
	}
}

func (s *MedicalRecordService) List(ctx context.Context) ([]*entities.MedicalRecord, error) {
	return s.repo.List(ctx)
}

func (s *MedicalRecordService) Get(ctx context.Context, id string) (*entities.MedicalRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MedicalRecordService) ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// Create stores a record after confirming the patient, the doctor and, when
// given, the appointment exist
func (s *MedicalRecordService) Create(ctx context.Context, input entities.MedicalRecordInput) (*entities.MedicalRecord, error) {
	record := &entities.MedicalRecord{}
	input.ApplyTo(record)
	if err := validate(record.ValidateReferences); err != nil {
		return nil, err
	}

	err := s.validator.Validate(ctx, Refs{
		PatientID:     record.PatientID,
		DoctorID:      record.DoctorID,
		AppointmentID: record.AppointmentID,
	})
	if err != nil {
		return nil, err
	}
	if err := validate(record.Validate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record.ID = uuid.New().String()
	record.Date = now
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("record_id", record.ID).
		Str("patient_id", record.PatientID).
		Msg("medical record created")
	return record, nil
}

// Update merges the provided fields; references are not re-checked
func (s *MedicalRecordService) Update(ctx context.Context, id string, input entities.MedicalRecordInput) (*entities.MedicalRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.ApplyTo(record)
	if err := validate(record.Validate); err != nil {
		return nil, err
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *MedicalRecordService) Delete(ctx context.Context, id string) (*entities.MedicalRecord, error) {
	return s.repo.Delete(ctx, id)
}

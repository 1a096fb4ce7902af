package repositories

import (
	"context"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// MedicalRecordRepository defines the interface for medical record data operations.
// Listings are ordered by record date, newest first.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *entities.MedicalRecord) error
	GetByID(ctx context.Context, id string) (*entities.MedicalRecord, error)
	List(ctx context.Context) ([]*entities.MedicalRecord, error)
	Update(ctx context.Context, record *entities.MedicalRecord) error
	Delete(ctx context.Context, id string) (*entities.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error)
	EnsureSchema(ctx context.Context) error
}

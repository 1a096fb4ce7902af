package repositories

import (
	"context"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// PatientRepository defines the interface for patient data operations
type PatientRepository interface {
	// Create persists a fully built patient
	Create(ctx context.Context, patient *entities.Patient) error

	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id string) (*entities.Patient, error)

	// List returns all patients, newest first
	List(ctx context.Context) ([]*entities.Patient, error)

	// Update overwrites a stored patient
	Update(ctx context.Context, patient *entities.Patient) error

	// Delete removes a patient and returns what was stored
	Delete(ctx context.Context, id string) (*entities.Patient, error)

	// SearchByName returns patients whose name contains the given text, case-insensitively
	SearchByName(ctx context.Context, name string) ([]*entities.Patient, error)

	// EnsureSchema creates the backing table or indexes if missing
	EnsureSchema(ctx context.Context) error
}

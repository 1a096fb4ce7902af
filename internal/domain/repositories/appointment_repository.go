package repositories

import (
	"context"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create persists a fully built appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// List returns all appointments, newest first
	List(ctx context.Context) ([]*entities.Appointment, error)

	// Update overwrites a stored appointment
	Update(ctx context.Context, appointment *entities.Appointment) error

	// Delete removes an appointment and returns what was stored
	Delete(ctx context.Context, id string) (*entities.Appointment, error)

	// ListByPatient retrieves appointments for a patient, newest first
	ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error)

	// ListByDoctor retrieves appointments for a doctor, newest first
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error)

	EnsureSchema(ctx context.Context) error
}

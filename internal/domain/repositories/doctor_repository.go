package repositories

import (
	"context"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor data operations
type DoctorRepository interface {
	Create(ctx context.Context, doctor *entities.Doctor) error
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)
	List(ctx context.Context) ([]*entities.Doctor, error)
	Update(ctx context.Context, doctor *entities.Doctor) error
	Delete(ctx context.Context, id string) (*entities.Doctor, error)

	// SearchBySpecialization matches the specialization case-insensitively
	SearchBySpecialization(ctx context.Context, specialization string) ([]*entities.Doctor, error)

	EnsureSchema(ctx context.Context) error
}

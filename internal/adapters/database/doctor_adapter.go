package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

const doctorsTable = "doctors"

var doctorColumns = []interface{}{
	"id", "name", "specialization", "phone", "schedule", "created_at", "updated_at",
}

var doctorSchema = []string{
	`CREATE TABLE IF NOT EXISTS doctors (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		specialization  TEXT NOT NULL,
		phone           TEXT NOT NULL,
		schedule        TEXT[] NOT NULL DEFAULT '{}',
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doctors_created_at ON doctors (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_doctors_specialization ON doctors (lower(specialization))`,
}

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// EnsureSchema creates the doctors table
func (a *DoctorAdapter) EnsureSchema(ctx context.Context) error {
	if err := ensureSchema(ctx, a.client.DB(), doctorSchema...); err != nil {
		return apperrors.NewInternalError("failed to create doctors schema", err)
	}
	return nil
}

// Create creates a new doctor
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	record := goqu.Record{
		"id":             doctor.ID,
		"name":           doctor.Name,
		"specialization": doctor.Specialization,
		"phone":          doctor.Phone,
		"schedule":       pq.Array(doctor.Schedule),
		"created_at":     doctor.CreatedAt,
		"updated_at":     doctor.UpdatedAt,
	}

	query, args, err := a.db.Insert(doctorsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create doctor", err)
	}
	return nil
}

// GetByID retrieves a doctor by ID
func (a *DoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	query, args, err := a.db.Select(doctorColumns...).
		From(doctorsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	doctor, err := scanDoctor(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(repositories.DoctorNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}
	return doctor, nil
}

// List returns every doctor, newest first
func (a *DoctorAdapter) List(ctx context.Context) ([]*entities.Doctor, error) {
	return a.query(ctx, a.db.Select(doctorColumns...).From(doctorsTable))
}

// SearchBySpecialization returns doctors whose specialization contains the given text
func (a *DoctorAdapter) SearchBySpecialization(ctx context.Context, specialization string) ([]*entities.Doctor, error) {
	ds := a.db.Select(doctorColumns...).
		From(doctorsTable).
		Where(goqu.I("specialization").ILike(fmt.Sprintf("%%%s%%", specialization)))
	return a.query(ctx, ds)
}

// Update overwrites a doctor
func (a *DoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	record := goqu.Record{
		"name":           doctor.Name,
		"specialization": doctor.Specialization,
		"phone":          doctor.Phone,
		"schedule":       pq.Array(doctor.Schedule),
		"updated_at":     doctor.UpdatedAt,
	}

	query, args, err := a.db.Update(doctorsTable).
		Set(record).
		Where(goqu.Ex{"id": doctor.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update doctor", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(repositories.DoctorNotFound)
	}
	return nil
}

// Delete removes a doctor and returns the deleted row
func (a *DoctorAdapter) Delete(ctx context.Context, id string) (*entities.Doctor, error) {
	query, args, err := a.db.Delete(doctorsTable).
		Where(goqu.Ex{"id": id}).
		Returning(doctorColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build delete query", err)
	}

	doctor, err := scanDoctor(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(repositories.DoctorNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to delete doctor", err)
	}
	return doctor, nil
}

func (a *DoctorAdapter) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Doctor, error) {
	query, args, err := ds.Order(goqu.I("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	doctors := make([]*entities.Doctor, 0)
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate doctors", err)
	}
	return doctors, nil
}

func scanDoctor(row rowScanner) (*entities.Doctor, error) {
	doctor := &entities.Doctor{}
	err := row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.Phone,
		pq.Array(&doctor.Schedule),
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if doctor.Schedule == nil {
		doctor.Schedule = []string{}
	}
	return doctor, nil
}

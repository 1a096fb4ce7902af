package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

const patientsTable = "patients"

var patientColumns = []interface{}{
	"id", "name", "birth_date", "gender", "phone", "address", "blood_type",
	"created_at", "updated_at",
}

var patientSchema = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		birth_date  TEXT NOT NULL,
		gender      TEXT NOT NULL,
		phone       TEXT NOT NULL,
		address     TEXT NOT NULL DEFAULT '',
		blood_type  TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_patients_created_at ON patients (created_at DESC)`,
}

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// EnsureSchema creates the patients table
func (a *PatientAdapter) EnsureSchema(ctx context.Context) error {
	if err := ensureSchema(ctx, a.client.DB(), patientSchema...); err != nil {
		return apperrors.NewInternalError("failed to create patients schema", err)
	}
	return nil
}

// Create creates a new patient
func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	record := goqu.Record{
		"id":         patient.ID,
		"name":       patient.Name,
		"birth_date": patient.BirthDate,
		"gender":     patient.Gender,
		"phone":      patient.Phone,
		"address":    patient.Address,
		"blood_type": patient.BloodType,
		"created_at": patient.CreatedAt,
		"updated_at": patient.UpdatedAt,
	}

	query, args, err := a.db.Insert(patientsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create patient", err)
	}
	return nil
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.Select(patientColumns...).
		From(patientsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	patient, err := scanPatient(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(repositories.PatientNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}
	return patient, nil
}

// List returns every patient, newest first
func (a *PatientAdapter) List(ctx context.Context) ([]*entities.Patient, error) {
	return a.query(ctx, a.db.Select(patientColumns...).From(patientsTable))
}

// SearchByName returns patients whose name contains the given text
func (a *PatientAdapter) SearchByName(ctx context.Context, name string) ([]*entities.Patient, error) {
	ds := a.db.Select(patientColumns...).
		From(patientsTable).
		Where(goqu.I("name").ILike(fmt.Sprintf("%%%s%%", name)))
	return a.query(ctx, ds)
}

// Update overwrites a patient
func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	record := goqu.Record{
		"name":       patient.Name,
		"birth_date": patient.BirthDate,
		"gender":     patient.Gender,
		"phone":      patient.Phone,
		"address":    patient.Address,
		"blood_type": patient.BloodType,
		"updated_at": patient.UpdatedAt,
	}

	query, args, err := a.db.Update(patientsTable).
		Set(record).
		Where(goqu.Ex{"id": patient.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update patient", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(repositories.PatientNotFound)
	}
	return nil
}

// Delete removes a patient and returns the deleted row
func (a *PatientAdapter) Delete(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.Delete(patientsTable).
		Where(goqu.Ex{"id": id}).
		Returning(patientColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build delete query", err)
	}

	patient, err := scanPatient(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(repositories.PatientNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to delete patient", err)
	}
	return patient, nil
}

func (a *PatientAdapter) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Patient, error) {
	query, args, err := ds.Order(goqu.I("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	defer rows.Close()

	patients := make([]*entities.Patient, 0)
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient", err)
		}
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate patients", err)
	}
	return patients, nil
}

func scanPatient(row rowScanner) (*entities.Patient, error) {
	patient := &entities.Patient{}
	err := row.Scan(
		&patient.ID,
		&patient.Name,
		&patient.BirthDate,
		&patient.Gender,
		&patient.Phone,
		&patient.Address,
		&patient.BloodType,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

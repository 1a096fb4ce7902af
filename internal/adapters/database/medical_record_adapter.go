package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

const medicalRecordsTable = "medical_records"

var medicalRecordColumns = []interface{}{
	"id", "patient_id", "doctor_id", "appointment_id", "diagnosis",
	"prescription", "notes", "date", "created_at", "updated_at",
}

var medicalRecordSchema = []string{
	`CREATE TABLE IF NOT EXISTS medical_records (
		id              TEXT PRIMARY KEY,
		patient_id      TEXT NOT NULL,
		doctor_id       TEXT NOT NULL,
		appointment_id  TEXT,
		diagnosis       TEXT NOT NULL,
		prescription    TEXT NOT NULL DEFAULT '',
		notes           TEXT NOT NULL DEFAULT '',
		date            TIMESTAMPTZ NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_medical_records_patient_id ON medical_records (patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_medical_records_date ON medical_records (date DESC)`,
}

// MedicalRecordAdapter implements the MedicalRecordRepository interface
type MedicalRecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMedicalRecordAdapter creates a new medical record adapter
func NewMedicalRecordAdapter(client *postgres.Client) repositories.MedicalRecordRepository {
	return &MedicalRecordAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// EnsureSchema creates the medical_records table
func (a *MedicalRecordAdapter) EnsureSchema(ctx context.Context) error {
	if err := ensureSchema(ctx, a.client.DB(), medicalRecordSchema...); err != nil {
		return apperrors.NewInternalError("failed to create medical_records schema", err)
	}
	return nil
}

// Create creates a new medical record
func (a *MedicalRecordAdapter) Create(ctx context.Context, record *entities.MedicalRecord) error {
	row := goqu.Record{
		"id":             record.ID,
		"patient_id":     record.PatientID,
		"doctor_id":      record.DoctorID,
		"appointment_id": nullString(record.AppointmentID),
		"diagnosis":      record.Diagnosis,
		"prescription":   record.Prescription,
		"notes":          record.Notes,
		"date":           record.Date,
		"created_at":     record.CreatedAt,
		"updated_at":     record.UpdatedAt,
	}

	query, args, err := a.db.Insert(medicalRecordsTable).Rows(row).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create medical record", err)
	}
	return nil
}

// GetByID retrieves a medical record by ID
func (a *MedicalRecordAdapter) GetByID(ctx context.Context, id string) (*entities.MedicalRecord, error) {
	query, args, err := a.db.Select(medicalRecordColumns...).
		From(medicalRecordsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	record, err := scanMedicalRecord(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(repositories.MedicalRecordNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get medical record", err)
	}
	return record, nil
}

// List returns every medical record, most recent date first
func (a *MedicalRecordAdapter) List(ctx context.Context) ([]*entities.MedicalRecord, error) {
	return a.query(ctx, a.db.Select(medicalRecordColumns...).From(medicalRecordsTable))
}

// ListByPatient retrieves medical records for a patient
func (a *MedicalRecordAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error) {
	ds := a.db.Select(medicalRecordColumns...).
		From(medicalRecordsTable).
		Where(goqu.Ex{"patient_id": patientID})
	return a.query(ctx, ds)
}

// Update overwrites a medical record
func (a *MedicalRecordAdapter) Update(ctx context.Context, record *entities.MedicalRecord) error {
	row := goqu.Record{
		"patient_id":     record.PatientID,
		"doctor_id":      record.DoctorID,
		"appointment_id": nullString(record.AppointmentID),
		"diagnosis":      record.Diagnosis,
		"prescription":   record.Prescription,
		"notes":          record.Notes,
		"updated_at":     record.UpdatedAt,
	}

	query, args, err := a.db.Update(medicalRecordsTable).
		Set(row).
		Where(goqu.Ex{"id": record.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update medical record", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(repositories.MedicalRecordNotFound)
	}
	return nil
}

// Delete removes a medical record and returns the deleted row
func (a *MedicalRecordAdapter) Delete(ctx context.Context, id string) (*entities.MedicalRecord, error) {
	query, args, err := a.db.Delete(medicalRecordsTable).
		Where(goqu.Ex{"id": id}).
		Returning(medicalRecordColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build delete query", err)
	}

	record, err := scanMedicalRecord(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(repositories.MedicalRecordNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to delete medical record", err)
	}
	return record, nil
}

func (a *MedicalRecordAdapter) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.MedicalRecord, error) {
	query, args, err := ds.Order(goqu.I("date").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list medical records", err)
	}
	defer rows.Close()

	records := make([]*entities.MedicalRecord, 0)
	for rows.Next() {
		record, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan medical record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate medical records", err)
	}
	return records, nil
}

func scanMedicalRecord(row rowScanner) (*entities.MedicalRecord, error) {
	record := &entities.MedicalRecord{}
	var appointmentID sql.NullString
	err := row.Scan(
		&record.ID,
		&record.PatientID,
		&record.DoctorID,
		&appointmentID,
		&record.Diagnosis,
		&record.Prescription,
		&record.Notes,
		&record.Date,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.AppointmentID = appointmentID.String
	return record, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

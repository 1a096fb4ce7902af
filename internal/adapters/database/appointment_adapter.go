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

const appointmentsTable = "appointments"

var appointmentColumns = []interface{}{
	"id", "patient_id", "doctor_id", "appointment_date", "status", "complaint",
	"created_at", "updated_at",
}

// patient_id and doctor_id are plain columns: the referenced rows live in
// other services' databases.
var appointmentSchema = []string{
	`CREATE TABLE IF NOT EXISTS appointments (
		id                TEXT PRIMARY KEY,
		patient_id        TEXT NOT NULL,
		doctor_id         TEXT NOT NULL,
		appointment_date  TEXT NOT NULL,
		status            TEXT NOT NULL DEFAULT 'pending',
		complaint         TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments (patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_doctor_id ON appointments (doctor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_created_at ON appointments (created_at DESC)`,
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// EnsureSchema creates the appointments table
func (a *AppointmentAdapter) EnsureSchema(ctx context.Context) error {
	if err := ensureSchema(ctx, a.client.DB(), appointmentSchema...); err != nil {
		return apperrors.NewInternalError("failed to create appointments schema", err)
	}
	return nil
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"id":               appointment.ID,
		"patient_id":       appointment.PatientID,
		"doctor_id":        appointment.DoctorID,
		"appointment_date": appointment.AppointmentDate,
		"status":           appointment.Status,
		"complaint":        appointment.Complaint,
		"created_at":       appointment.CreatedAt,
		"updated_at":       appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert(appointmentsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}
	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(repositories.AppointmentNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}
	return appointment, nil
}

// List returns every appointment, newest first
func (a *AppointmentAdapter) List(ctx context.Context) ([]*entities.Appointment, error) {
	return a.query(ctx, a.db.Select(appointmentColumns...).From(appointmentsTable))
}

// ListByPatient retrieves appointments for a patient
func (a *AppointmentAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(goqu.Ex{"patient_id": patientID})
	return a.query(ctx, ds)
}

// ListByDoctor retrieves appointments for a doctor
func (a *AppointmentAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(goqu.Ex{"doctor_id": doctorID})
	return a.query(ctx, ds)
}

// Update overwrites an appointment
func (a *AppointmentAdapter) Update(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"patient_id":       appointment.PatientID,
		"doctor_id":        appointment.DoctorID,
		"appointment_date": appointment.AppointmentDate,
		"status":           appointment.Status,
		"complaint":        appointment.Complaint,
		"updated_at":       appointment.UpdatedAt,
	}

	query, args, err := a.db.Update(appointmentsTable).
		Set(record).
		Where(goqu.Ex{"id": appointment.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(repositories.AppointmentNotFound)
	}
	return nil
}

// Delete removes an appointment and returns the deleted row
func (a *AppointmentAdapter) Delete(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Delete(appointmentsTable).
		Where(goqu.Ex{"id": id}).
		Returning(appointmentColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build delete query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(repositories.AppointmentNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to delete appointment", err)
	}
	return appointment, nil
}

func (a *AppointmentAdapter) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Appointment, error) {
	query, args, err := ds.Order(goqu.I("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	appointments := make([]*entities.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate appointments", err)
	}
	return appointments, nil
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.AppointmentDate,
		&appointment.Status,
		&appointment.Complaint,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

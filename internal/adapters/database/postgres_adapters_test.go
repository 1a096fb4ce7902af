package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/smarthealthcare/internal/adapters/database"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

func newMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

var patientRowColumns = []string{
	"id", "name", "birth_date", "gender", "phone", "address", "blood_type", "created_at", "updated_at",
}

func TestPatientAdapter_Create(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewPatientAdapter(client)

	now := time.Now()
	mock.ExpectExec(`INSERT INTO "patients"`).WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Create(context.Background(), &entities.Patient{
		ID: "p-1", Name: "Ani", BirthDate: "1990-01-01", Gender: entities.GenderFemale,
		Phone: "0812", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientAdapter_GetByID_NotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewPatientAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "patients" WHERE \("id" = 'missing'\)`).
		WillReturnRows(sqlmock.NewRows(patientRowColumns))

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Equal(t, "Patient not found", err.(*apperrors.AppError).Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientAdapter_SearchByName(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewPatientAdapter(client)

	now := time.Now()
	mock.ExpectQuery(`"name" ILIKE '%ani%'\) ORDER BY "created_at" DESC`).
		WillReturnRows(sqlmock.NewRows(patientRowColumns).
			AddRow("p-1", "Ani", "1990-01-01", "female", "0812", "", "A+", now, now))

	patients, err := adapter.SearchByName(context.Background(), "ani")
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, entities.BloodTypeAPositive, patients[0].BloodType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientAdapter_Update_NotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewPatientAdapter(client)

	mock.ExpectExec(`UPDATE "patients"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Update(context.Background(), &entities.Patient{ID: "gone"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestPatientAdapter_Delete_ReturnsRow(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewPatientAdapter(client)

	now := time.Now()
	mock.ExpectQuery(`DELETE FROM "patients" .* RETURNING`).
		WillReturnRows(sqlmock.NewRows(patientRowColumns).
			AddRow("p-1", "Ani", "1990-01-01", "female", "0812", "", "", now, now))

	deleted, err := adapter.Delete(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", deleted.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorAdapter_ListScansSchedule(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewDoctorAdapter(client)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "doctors" ORDER BY "created_at" DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialization", "phone", "schedule", "created_at", "updated_at"}).
			AddRow("d-1", "Dr. Rina", "Cardiology", "0811", `{"Monday 09:00-12:00","Friday 13:00-15:00"}`, now, now).
			AddRow("d-2", "Dr. Bayu", "Dermatology", "0813", `{}`, now, now))

	doctors, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, []string{"Monday 09:00-12:00", "Friday 13:00-15:00"}, doctors[0].Schedule)
	assert.NotNil(t, doctors[1].Schedule)
	assert.Empty(t, doctors[1].Schedule)
}

func TestAppointmentAdapter_ListByPatient(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewAppointmentAdapter(client)

	now := time.Now()
	mock.ExpectQuery(`FROM "appointments" WHERE \("patient_id" = 'p-1'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "doctor_id", "appointment_date", "status", "complaint", "created_at", "updated_at"}).
			AddRow("a-1", "p-1", "d-1", "2024-03-01 09:00", "pending", "cough", now, now))

	appointments, err := adapter.ListByPatient(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, entities.AppointmentStatusPending, appointments[0].Status)
}

func TestMedicalRecordAdapter_GetByID_NullAppointment(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMedicalRecordAdapter(client)

	now := time.Now()
	mock.ExpectQuery(`FROM "medical_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "doctor_id", "appointment_id", "diagnosis", "prescription", "notes", "date", "created_at", "updated_at"}).
			AddRow("r-1", "p-1", "d-1", nil, "Flu", "Rest", "", now, now, now))

	record, err := adapter.GetByID(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Empty(t, record.AppointmentID)
	assert.Equal(t, "Flu", record.Diagnosis)
}

func TestMedicalRecordAdapter_DriverErrorIsInternal(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMedicalRecordAdapter(client)

	mock.ExpectQuery(`FROM "medical_records"`).WillReturnError(errors.New("connection reset"))

	_, err := adapter.List(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestEnsureSchema_RunsAllStatements(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewAppointmentAdapter(client)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS appointments`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_appointments_patient_id`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_appointments_doctor_id`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_appointments_created_at`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, adapter.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

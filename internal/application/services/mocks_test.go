package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *entities.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) List(ctx context.Context) ([]*entities.Patient, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *entities.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id string) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) SearchByName(ctx context.Context, name string) ([]*entities.Patient, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) EnsureSchema(ctx context.Context) error {
	return nil
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context) ([]*entities.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *entities.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) EnsureSchema(ctx context.Context) error {
	return nil
}

type MockMedicalRecordRepository struct {
	mock.Mock
}

func (m *MockMedicalRecordRepository) Create(ctx context.Context, record *entities.MedicalRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockMedicalRecordRepository) GetByID(ctx context.Context, id string) (*entities.MedicalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) List(ctx context.Context) ([]*entities.MedicalRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) Update(ctx context.Context, record *entities.MedicalRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockMedicalRecordRepository) Delete(ctx context.Context, id string) (*entities.MedicalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]*entities.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) EnsureSchema(ctx context.Context) error {
	return nil
}

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/smarthealthcare/internal/api/handlers"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) List(ctx context.Context) ([]*entities.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientService) Get(ctx context.Context, id string) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientService) Create(ctx context.Context, input entities.PatientInput) (*entities.Patient, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientService) Update(ctx context.Context, id string, input entities.PatientInput) (*entities.Patient, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientService) Delete(ctx context.Context, id string) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) List(ctx context.Context) ([]*entities.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Get(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Create(ctx context.Context, input entities.AppointmentInput) (*entities.Appointment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Update(ctx context.Context, id string, input entities.AppointmentInput) (*entities.Appointment, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) UpdateStatus(ctx context.Context, id, status string) (*entities.Appointment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Delete(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPatientHandler_Create(t *testing.T) {
	t.Run("returns 201 with the stored patient", func(t *testing.T) {
		service := new(MockPatientService)
		handler := handlers.NewPatientHandler(service)

		service.On("Create", mock.Anything, mock.MatchedBy(func(in entities.PatientInput) bool {
			return in.Name != nil && *in.Name == "Ani" && in.BloodType != nil && *in.BloodType == "O+"
		})).Return(&entities.Patient{ID: "p-1", Name: "Ani", BloodType: entities.BloodTypeOPositive}, nil)

		body := `{"name":"Ani","birth_date":"1990-01-01","gender":"female","phone":"0812","blood_type":"O+"}`
		req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		envelope := decodeEnvelope(t, w)
		assert.Equal(t, true, envelope["success"])
		assert.Equal(t, "Patient created successfully", envelope["message"])
		assert.Equal(t, "p-1", envelope["data"].(map[string]interface{})["id"])
		service.AssertExpectations(t)
	})

	t.Run("validation failure is a 400", func(t *testing.T) {
		service := new(MockPatientService)
		handler := handlers.NewPatientHandler(service)
		service.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewValidationError("phone: Phone number is required."))

		req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewBufferString(`{"name":"Ani"}`))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		envelope := decodeEnvelope(t, w)
		assert.Equal(t, false, envelope["success"])
		assert.Equal(t, "Error creating patient", envelope["message"])
		assert.Contains(t, envelope["error"], "Phone number is required")
	})

	t.Run("malformed json is a 400", func(t *testing.T) {
		service := new(MockPatientService)
		handler := handlers.NewPatientHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewBufferString(`{"name":`))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPatientHandler_GetAndList(t *testing.T) {
	service := new(MockPatientService)
	handler := handlers.NewPatientHandler(service)

	service.On("Get", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("Patient not found"))
	service.On("List", mock.Anything).Return([]*entities.Patient{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/patients/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Patient not found", decodeEnvelope(t, w)["message"])

	w = httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/patients", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, float64(0), envelope["count"])
	assert.Equal(t, []interface{}{}, envelope["data"])
}

func TestPatientHandler_Delete_ReturnsDeletedDocument(t *testing.T) {
	service := new(MockPatientService)
	handler := handlers.NewPatientHandler(service)
	service.On("Delete", mock.Anything, "p-1").Return(&entities.Patient{ID: "p-1", Name: "Ani"}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/patients/p-1", nil)
	req.SetPathValue("id", "p-1")
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, "Patient deleted successfully", envelope["message"])
	assert.Equal(t, "Ani", envelope["data"].(map[string]interface{})["name"])
}

func TestAppointmentHandler_Create_UpstreamErrors(t *testing.T) {
	t.Run("dangling patient is a 404", func(t *testing.T) {
		service := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(service)
		service.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.NewNotFoundError("Patient not found"))

		req := httptest.NewRequest(http.MethodPost, "/appointments",
			bytes.NewBufferString(`{"patient_id":"p-x","doctor_id":"d-1","appointment_date":"2024-06-01 10:00"}`))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Patient not found", decodeEnvelope(t, w)["message"])
	})

	t.Run("unreachable service is a 502", func(t *testing.T) {
		service := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(service)
		service.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewExternalError("patient service unavailable", errors.New("connection refused")))

		req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		envelope := decodeEnvelope(t, w)
		assert.Equal(t, "Upstream service unavailable", envelope["message"])
		assert.Contains(t, envelope["error"], "connection refused")
	})
}

func TestAppointmentHandler_UpdateStatus(t *testing.T) {
	service := new(MockAppointmentService)
	handler := handlers.NewAppointmentHandler(service)
	service.On("UpdateStatus", mock.Anything, "a-1", "confirmed").
		Return(&entities.Appointment{ID: "a-1", Status: entities.AppointmentStatusConfirmed}, nil)
	service.On("UpdateStatus", mock.Anything, "a-1", "bogus").
		Return(nil, apperrors.NewValidationError(entities.InvalidStatusMessage))

	req := httptest.NewRequest(http.MethodPut, "/appointments/a-1/status", bytes.NewBufferString(`{"status":"confirmed"}`))
	req.SetPathValue("id", "a-1")
	w := httptest.NewRecorder()
	handler.UpdateStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Appointment status updated successfully", decodeEnvelope(t, w)["message"])

	req = httptest.NewRequest(http.MethodPut, "/appointments/a-1/status", bytes.NewBufferString(`{"status":"bogus"}`))
	req.SetPathValue("id", "a-1")
	w = httptest.NewRecorder()
	handler.UpdateStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entities.InvalidStatusMessage, decodeEnvelope(t, w)["error"])
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.NewHealthHandler("Patient Service", 3001).Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "Patient Service", body["service"])
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, float64(3001), body["port"])
}

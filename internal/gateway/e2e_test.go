package gateway_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/smarthealthcare/internal/adapters/docstore"
	"github.com/zatekoja/smarthealthcare/internal/api/handlers"
	"github.com/zatekoja/smarthealthcare/internal/api/routes"
	"github.com/zatekoja/smarthealthcare/internal/application/services"
	"github.com/zatekoja/smarthealthcare/internal/gateway"
	redisclient "github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/redis"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/serviceapi"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type stack struct {
	gateway *httptest.Server
}

func startStack(t *testing.T) *stack {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { rdb.Close() })
	store := redisclient.NewClientFromRedis(rdb)

	serve := func(opts ...routes.Option) *httptest.Server {
		srv := httptest.NewServer(routes.NewRouter(opts...).SetupRoutes())
		t.Cleanup(srv.Close)
		return srv
	}

	patients := serve(routes.WithPatients(handlers.NewPatientHandler(
		services.NewPatientService(docstore.NewPatientStore(store)))))
	doctors := serve(routes.WithDoctors(handlers.NewDoctorHandler(
		services.NewDoctorService(docstore.NewDoctorStore(store)))))

	validator := services.NewReferenceValidator(
		serviceapi.NewPatientLookup(patients.URL, 0),
		serviceapi.NewDoctorLookup(doctors.URL, 0),
		nil,
	)
	appointments := serve(routes.WithAppointments(handlers.NewAppointmentHandler(
		services.NewAppointmentService(docstore.NewAppointmentStore(store), validator))))

	recordValidator := services.NewReferenceValidator(
		serviceapi.NewPatientLookup(patients.URL, 0),
		serviceapi.NewDoctorLookup(doctors.URL, 0),
		serviceapi.NewAppointmentLookup(appointments.URL, 0),
	)
	records := serve(routes.WithMedicalRecords(handlers.NewMedicalRecordHandler(
		services.NewMedicalRecordService(docstore.NewMedicalRecordStore(store), recordValidator))))

	g, err := gateway.New(config.ServicesConfig{
		PatientURL:       patients.URL,
		DoctorURL:        doctors.URL,
		AppointmentURL:   appointments.URL,
		MedicalRecordURL: records.URL,
	}, gateway.Options{Version: "test"})
	require.NoError(t, err)

	gw := httptest.NewServer(g.Handler())
	t.Cleanup(gw.Close)
	return &stack{gateway: gw}
}

func (s *stack) call(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.gateway.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func idOf(t *testing.T, env envelope) string {
	t.Helper()
	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.ID)
	return data.ID
}

func TestEndToEnd_BookingAndDanglingReference(t *testing.T) {
	s := startStack(t)

	status, env := s.call(t, http.MethodPost, "/api/patients",
		`{"name":"Budi","birth_date":"1990-05-12","gender":"male","phone":"0812","blood_type":"B+"}`)
	require.Equal(t, http.StatusCreated, status, env.Error)
	patientID := idOf(t, env)

	status, env = s.call(t, http.MethodPost, "/api/doctors",
		`{"name":"Dr. Rina","specialization":"Cardiology","phone":"0811"}`)
	require.Equal(t, http.StatusCreated, status, env.Error)
	doctorID := idOf(t, env)

	status, env = s.call(t, http.MethodPost, "/api/appointments",
		`{"patient_id":"ghost","doctor_id":"`+doctorID+`","appointment_date":"2024-03-01 09:30"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Patient not found", env.Message)

	status, env = s.call(t, http.MethodPost, "/api/appointments",
		`{"patient_id":"`+patientID+`","doctor_id":"`+doctorID+`","appointment_date":"2024-03-01 09:30"}`)
	require.Equal(t, http.StatusCreated, status, env.Error)
	appointmentID := idOf(t, env)

	status, env = s.call(t, http.MethodPut, "/api/appointments/"+appointmentID+"/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "Appointment status updated successfully", env.Message)

	status, env = s.call(t, http.MethodPost, "/api/records",
		`{"patient_id":"`+patientID+`","doctor_id":"`+doctorID+`","appointment_id":"missing","diagnosis":"Flu"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Appointment not found", env.Message)

	status, env = s.call(t, http.MethodPost, "/api/records",
		`{"patient_id":"`+patientID+`","doctor_id":"`+doctorID+`","appointment_id":"`+appointmentID+`","diagnosis":"Flu"}`)
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, _ = s.call(t, http.MethodDelete, "/api/patients/"+patientID, "")
	require.Equal(t, http.StatusOK, status)

	status, env = s.call(t, http.MethodGet, "/api/appointments/"+appointmentID, "")
	require.Equal(t, http.StatusOK, status)
	var appointment struct {
		PatientID string `json:"patient_id"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &appointment))
	assert.Equal(t, patientID, appointment.PatientID)
	assert.Equal(t, "completed", appointment.Status)

	status, env = s.call(t, http.MethodGet, "/api/records/patient/"+patientID, "")
	require.Equal(t, http.StatusOK, status)
	var records []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &records))
	assert.Len(t, records, 1)
}

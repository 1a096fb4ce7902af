package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

type seen struct {
	method, path, query, body string
}

func recordingUpstream(t *testing.T, got *seen, status int, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*got = seen{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(body)}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUpstreamPath(t *testing.T) {
	assert.Equal(t, "/patients", upstreamPath("/api/patients"))
	assert.Equal(t, "/appointments/a-1/status", upstreamPath("/api/appointments/a-1/status"))
	assert.Equal(t, "/records/patient/p-1", upstreamPath("/api/records/patient/p-1"))
	assert.Equal(t, "/graphql", upstreamPath("/graphql/doctors"))
}

func TestGateway_ForwardsUnchanged(t *testing.T) {
	var got seen
	upstream := recordingUpstream(t, &got, http.StatusNotFound, `{"success":false,"message":"Patient not found"}`)

	g, err := New(config.ServicesConfig{
		PatientURL:       upstream.URL,
		DoctorURL:        upstream.URL,
		AppointmentURL:   upstream.URL,
		MedicalRecordURL: upstream.URL,
	}, Options{Version: "1.0.0", Port: 3000})
	require.NoError(t, err)
	handler := g.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/patients/p-9?dry=1", strings.NewReader(`{"name":"Ani"}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "yes", rec.Header().Get("X-Upstream"))
	assert.JSONEq(t, `{"success":false,"message":"Patient not found"}`, rec.Body.String())
	assert.Equal(t, seen{method: http.MethodPut, path: "/patients/p-9", query: "dry=1", body: `{"name":"Ani"}`}, got)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql/appointments", strings.NewReader(`{"query":"{ appointments { id } }"}`)))
	assert.Equal(t, "/graphql", got.path)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/patient/p-1", nil))
	assert.Equal(t, "/records/patient/p-1", got.path)
}

func TestGateway_UnknownRoutes(t *testing.T) {
	g, err := New(config.ServicesConfig{
		PatientURL:       "http://localhost:3001",
		DoctorURL:        "http://localhost:3002",
		AppointmentURL:   "http://localhost:3003",
		MedicalRecordURL: "http://localhost:3004",
	}, Options{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql/records", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/billing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGateway_UpstreamUnreachable(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	g, err := New(config.ServicesConfig{
		PatientURL:       "http://localhost:3001",
		DoctorURL:        deadURL,
		AppointmentURL:   "http://localhost:3003",
		MedicalRecordURL: "http://localhost:3004",
	}, Options{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/doctors", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Error contacting doctor service", body["message"])
	assert.NotEmpty(t, body["error"])
}

func TestGateway_RootAndHealth(t *testing.T) {
	g, err := New(config.ServicesConfig{
		PatientURL:       "http://localhost:3001",
		DoctorURL:        "http://localhost:3002",
		AppointmentURL:   "http://localhost:3003",
		MedicalRecordURL: "http://localhost:3004",
	}, Options{Version: "1.0.0", Port: 3000})
	require.NoError(t, err)
	handler := g.Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "gateway:3000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var root struct {
		Message   string            `json:"message"`
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &root))
	assert.Equal(t, "Smart Healthcare System API Gateway", root.Message)
	assert.Equal(t, "1.0.0", root.Version)
	assert.Equal(t, "http://gateway:3000/api/records", root.Endpoints["medical_records"])

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"service":"API Gateway","status":"running","port":3000}`, rec.Body.String())
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New(config.ServicesConfig{PatientURL: "not a url"}, Options{})
	assert.Error(t, err)
}

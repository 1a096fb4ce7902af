package routes_test

import (
	"encoding/json"
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
	redisclient "github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/redis"
)

func newPatientRouter(t *testing.T) http.Handler {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := docstore.NewPatientStore(redisclient.NewClientFromRedis(rdb))
	router := routes.NewRouter(
		routes.WithPatients(handlers.NewPatientHandler(services.NewPatientService(store))),
		routes.WithHealth(handlers.NewHealthHandler("Patient Service", 3001)),
	)
	return router.SetupRoutes()
}

func TestRouter_PatientLifecycle(t *testing.T) {
	handler := newPatientRouter(t)

	body := `{"name":"Ani","birth_date":"1992-02-02","gender":"female","phone":"0812","blood_type":"A+"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, created.Success)
	require.NotEmpty(t, created.Data.ID)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/"+created.Data.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/patients/"+created.Data.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/"+created.Data.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Patient not found")
}

func TestRouter_UnmountedRoutes(t *testing.T) {
	handler := newPatientRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/patients/abc", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	handler := newPatientRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"service":"Patient Service","status":"running","port":3001}`, rec.Body.String())
}

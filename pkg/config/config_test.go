package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.GatewayPort)
	assert.Equal(t, 3001, cfg.Server.PatientPort)
	assert.Equal(t, 3002, cfg.Server.DoctorPort)
	assert.Equal(t, 3003, cfg.Server.AppointmentPort)
	assert.Equal(t, 3004, cfg.Server.MedicalRecordPort)
	assert.Equal(t, "http://localhost:3001", cfg.Services.PatientURL)
	assert.Equal(t, "http://localhost:3004", cfg.Services.MedicalRecordURL)
	assert.Equal(t, StorageBackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "healthcare_db", cfg.Database.Database)
	assert.Equal(t, time.Duration(0), cfg.Lookup.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PATIENT_PORT", "4001")
	t.Setenv("DOCTOR_SERVICE_URL", "http://doctor-service:3002/")
	t.Setenv("STORAGE_BACKEND", "REDIS")
	t.Setenv("LOOKUP_TIMEOUT_SECONDS", "5")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4001, cfg.Server.PatientPort)
	assert.Equal(t, "http://localhost:4001", cfg.Services.PatientURL)
	assert.Equal(t, "http://doctor-service:3002", cfg.Services.DoctorURL)
	assert.Equal(t, StorageBackendRedis, cfg.Storage.Backend)
	assert.Equal(t, 5*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ReadsDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APPOINTMENT_PORT=5003\nDB_NAME=records_test\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5003, cfg.Server.AppointmentPort)
	assert.Equal(t, "records_test", cfg.Database.Database)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORAGE_BACKEND", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", cfg.DatabaseDSN())
}

func TestLoad_VaultSecrets(t *testing.T) {
	vault := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != "root" || r.URL.Path != "/v1/secret/data/healthcare" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"data":{"data":{"DB_PASSWORD":"s3cret","REDIS_DB":2,"PATIENT_PORT":"9001"}}}`))
	}))
	defer vault.Close()

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("VAULT_ENABLED", "true")
	t.Setenv("VAULT_ADDR", vault.URL)
	t.Setenv("VAULT_TOKEN", "root")
	t.Setenv("VAULT_PATH", "healthcare")
	t.Setenv("PATIENT_PORT", "4001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 4001, cfg.Server.PatientPort, "explicit environment wins over vault")
}

func TestLoad_VaultFailure(t *testing.T) {
	vault := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer vault.Close()

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("VAULT_ENABLED", "true")
	t.Setenv("VAULT_ADDR", vault.URL)
	t.Setenv("VAULT_TOKEN", "wrong")
	t.Setenv("VAULT_PATH", "healthcare")

	_, err := Load()
	assert.Error(t, err)
}

func TestVaultURL(t *testing.T) {
	u, err := vaultURL("http://vault:8200/", "secret", "/app", 1)
	require.NoError(t, err)
	assert.Equal(t, "http://vault:8200/v1/secret/app", u)

	_, err = vaultURL("", "secret", "app", 2)
	assert.Error(t, err)
}

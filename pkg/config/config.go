package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends understood by the entity services.
const (
	StorageBackendPostgres = "postgres"
	StorageBackendRedis    = "redis"
)

// Config holds all application configuration
type Config struct {
	Env      string
	LogLevel string
	Server   ServerConfig
	Services ServicesConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Lookup   LookupConfig
	CORS     CORSConfig
	OTEL     OTELConfig
}

// ServerConfig holds the listen host and the port of every process
type ServerConfig struct {
	Host              string
	GatewayPort       int
	PatientPort       int
	DoctorPort        int
	AppointmentPort   int
	MedicalRecordPort int
}

// ServicesConfig holds the base URLs other processes use to reach each entity service
type ServicesConfig struct {
	PatientURL       string
	DoctorURL        string
	AppointmentURL   string
	MedicalRecordURL string
}

// StorageConfig selects the entity store implementation
type StorageConfig struct {
	Backend string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LookupConfig controls the cross-service existence checks.
// A zero Timeout leaves the HTTP transport default in place.
type LookupConfig struct {
	Timeout time.Duration
}

// CORSConfig holds the allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables, falling back to an
// optional dotenv file (CONFIG_FILE, default ".env"). When VAULT_ENABLED is
// set, keys of the Vault secret at VAULT_PATH are layered on top.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	configFile := v.GetString("CONFIG_FILE")
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
		}
	}

	vault := vaultConfig(v)
	ctx, cancel := context.WithTimeout(context.Background(), vault.Timeout)
	defer cancel()
	if _, err := applyVaultSecrets(ctx, v, vault); err != nil {
		return nil, fmt.Errorf("failed to load vault secrets: %w", err)
	}

	backend := strings.ToLower(v.GetString("STORAGE_BACKEND"))
	if backend != StorageBackendPostgres && backend != StorageBackendRedis {
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q (want %s or %s)", backend, StorageBackendPostgres, StorageBackendRedis)
	}

	cfg := &Config{
		Env:      v.GetString("ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Server: ServerConfig{
			Host:              v.GetString("SERVER_HOST"),
			GatewayPort:       v.GetInt("GATEWAY_PORT"),
			PatientPort:       v.GetInt("PATIENT_PORT"),
			DoctorPort:        v.GetInt("DOCTOR_PORT"),
			AppointmentPort:   v.GetInt("APPOINTMENT_PORT"),
			MedicalRecordPort: v.GetInt("MEDICAL_RECORD_PORT"),
		},
		Storage: StorageConfig{
			Backend: backend,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Database: v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Lookup: LookupConfig{
			Timeout: time.Duration(v.GetInt("LOOKUP_TIMEOUT_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		OTEL: OTELConfig{
			ServiceName:    v.GetString("OTEL_SERVICE_NAME"),
			ServiceVersion: v.GetString("OTEL_SERVICE_VERSION"),
			Endpoint:       v.GetString("OTEL_ENDPOINT"),
			Enabled:        v.GetBool("OTEL_ENABLED"),
		},
	}

	cfg.Services = ServicesConfig{
		PatientURL:       serviceURL(v, "PATIENT_SERVICE_URL", cfg.Server.PatientPort),
		DoctorURL:        serviceURL(v, "DOCTOR_SERVICE_URL", cfg.Server.DoctorPort),
		AppointmentURL:   serviceURL(v, "APPOINTMENT_SERVICE_URL", cfg.Server.AppointmentPort),
		MedicalRecordURL: serviceURL(v, "MEDICAL_RECORD_SERVICE_URL", cfg.Server.MedicalRecordPort),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("CONFIG_FILE", ".env")
	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("GATEWAY_PORT", 3000)
	v.SetDefault("PATIENT_PORT", 3001)
	v.SetDefault("DOCTOR_PORT", 3002)
	v.SetDefault("APPOINTMENT_PORT", 3003)
	v.SetDefault("MEDICAL_RECORD_PORT", 3004)

	v.SetDefault("STORAGE_BACKEND", StorageBackendPostgres)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "healthcare_db")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOOKUP_TIMEOUT_SECONDS", 0)
	v.SetDefault("ALLOWED_ORIGINS", "*")

	v.SetDefault("OTEL_SERVICE_NAME", "smart-healthcare")
	v.SetDefault("OTEL_SERVICE_VERSION", "1.0.0")
	v.SetDefault("OTEL_ENDPOINT", "")
	v.SetDefault("OTEL_ENABLED", false)

	v.SetDefault("VAULT_ENABLED", false)
	v.SetDefault("VAULT_MOUNT", "secret")
	v.SetDefault("VAULT_KV_VERSION", 2)
	v.SetDefault("VAULT_TIMEOUT_MS", 5000)
	v.SetDefault("VAULT_OVERWRITE", false)
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ListenAddr returns host:port for the given port
func (c *ServerConfig) ListenAddr(port int) string {
	return fmt.Sprintf("%s:%d", c.Host, port)
}

func serviceURL(v *viper.Viper, key string, port int) string {
	if u := strings.TrimSpace(v.GetString(key)); u != "" {
		return strings.TrimRight(u, "/")
	}
	return fmt.Sprintf("http://localhost:%d", port)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

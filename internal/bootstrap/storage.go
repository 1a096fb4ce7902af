package bootstrap

import (
	"context"
	"fmt"

	"github.com/zatekoja/smarthealthcare/internal/adapters/database"
	"github.com/zatekoja/smarthealthcare/internal/adapters/docstore"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/redis"
	"github.com/zatekoja/smarthealthcare/pkg/config"
)

// Storage is the single datastore handle of a process
type Storage struct {
	backend string
	pg      *postgres.Client
	rdb     *redis.Client
}

// OpenStorage connects to the configured backend, retrying until it answers
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		client, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return &Storage{backend: config.StorageBackendRedis, rdb: client}, nil
	case config.StorageBackendPostgres:
		client, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return &Storage{backend: config.StorageBackendPostgres, pg: client}, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

// NewRedisStorage wraps an existing Redis client
func NewRedisStorage(client *redis.Client) *Storage {
	return &Storage{backend: config.StorageBackendRedis, rdb: client}
}

// NewPostgresStorage wraps an existing PostgreSQL client
func NewPostgresStorage(client *postgres.Client) *Storage {
	return &Storage{backend: config.StorageBackendPostgres, pg: client}
}

// Backend names the open backend
func (s *Storage) Backend() string {
	return s.backend
}

func (s *Storage) Patients() repositories.PatientRepository {
	if s.rdb != nil {
		return docstore.NewPatientStore(s.rdb)
	}
	return database.NewPatientAdapter(s.pg)
}

func (s *Storage) Doctors() repositories.DoctorRepository {
	if s.rdb != nil {
		return docstore.NewDoctorStore(s.rdb)
	}
	return database.NewDoctorAdapter(s.pg)
}

func (s *Storage) Appointments() repositories.AppointmentRepository {
	if s.rdb != nil {
		return docstore.NewAppointmentStore(s.rdb)
	}
	return database.NewAppointmentAdapter(s.pg)
}

func (s *Storage) MedicalRecords() repositories.MedicalRecordRepository {
	if s.rdb != nil {
		return docstore.NewMedicalRecordStore(s.rdb)
	}
	return database.NewMedicalRecordAdapter(s.pg)
}

// Close releases the datastore handle
func (s *Storage) Close() error {
	if s.rdb != nil {
		return s.rdb.Close()
	}
	if s.pg != nil {
		return s.pg.Close()
	}
	return nil
}

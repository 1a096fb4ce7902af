package docstore

import (
	"context"
	"strings"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	redisclient "github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/redis"
)

// PatientStore implements the PatientRepository interface on Redis
type PatientStore struct {
	docs *collection[entities.Patient]
}

// NewPatientStore creates a Redis-backed patient store
func NewPatientStore(client *redisclient.Client) repositories.PatientRepository {
	return &PatientStore{docs: &collection[entities.Patient]{
		client:   client,
		kind:     "patients",
		notFound: repositories.PatientNotFound,
		id:       func(p *entities.Patient) string { return p.ID },
		score:    func(p *entities.Patient) float64 { return float64(p.CreatedAt.UnixNano()) },
	}}
}

func (s *PatientStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *PatientStore) Create(ctx context.Context, patient *entities.Patient) error {
	return s.docs.create(ctx, patient)
}

func (s *PatientStore) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	return s.docs.get(ctx, id)
}

func (s *PatientStore) List(ctx context.Context) ([]*entities.Patient, error) {
	return s.docs.list(ctx)
}

func (s *PatientStore) Update(ctx context.Context, patient *entities.Patient) error {
	return s.docs.update(ctx, patient)
}

func (s *PatientStore) Delete(ctx context.Context, id string) (*entities.Patient, error) {
	return s.docs.delete(ctx, id)
}

// SearchByName scans the collection; there is no secondary index on name
func (s *PatientStore) SearchByName(ctx context.Context, name string) ([]*entities.Patient, error) {
	needle := strings.ToLower(name)
	return s.docs.filter(ctx, func(p *entities.Patient) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	})
}

// DoctorStore implements the DoctorRepository interface on Redis
type DoctorStore struct {
	docs *collection[entities.Doctor]
}

// NewDoctorStore creates a Redis-backed doctor store
func NewDoctorStore(client *redisclient.Client) repositories.DoctorRepository {
	return &DoctorStore{docs: &collection[entities.Doctor]{
		client:   client,
		kind:     "doctors",
		notFound: repositories.DoctorNotFound,
		id:       func(d *entities.Doctor) string { return d.ID },
		score:    func(d *entities.Doctor) float64 { return float64(d.CreatedAt.UnixNano()) },
	}}
}

func (s *DoctorStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *DoctorStore) Create(ctx context.Context, doctor *entities.Doctor) error {
	return s.docs.create(ctx, doctor)
}

func (s *DoctorStore) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.docs.get(ctx, id)
}

func (s *DoctorStore) List(ctx context.Context) ([]*entities.Doctor, error) {
	return s.docs.list(ctx)
}

func (s *DoctorStore) Update(ctx context.Context, doctor *entities.Doctor) error {
	return s.docs.update(ctx, doctor)
}

func (s *DoctorStore) Delete(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.docs.delete(ctx, id)
}

func (s *DoctorStore) SearchBySpecialization(ctx context.Context, specialization string) ([]*entities.Doctor, error) {
	needle := strings.ToLower(specialization)
	return s.docs.filter(ctx, func(d *entities.Doctor) bool {
		return strings.Contains(strings.ToLower(d.Specialization), needle)
	})
}

// AppointmentStore implements the AppointmentRepository interface on Redis
type AppointmentStore struct {
	docs *collection[entities.Appointment]
}

// NewAppointmentStore creates a Redis-backed appointment store
func NewAppointmentStore(client *redisclient.Client) repositories.AppointmentRepository {
	return &AppointmentStore{docs: &collection[entities.Appointment]{
		client:   client,
		kind:     "appointments",
		notFound: repositories.AppointmentNotFound,
		id:       func(a *entities.Appointment) string { return a.ID },
		score:    func(a *entities.Appointment) float64 { return float64(a.CreatedAt.UnixNano()) },
		refs: func(a *entities.Appointment) map[string]string {
			return map[string]string{"by_patient": a.PatientID, "by_doctor": a.DoctorID}
		},
	}}
}

func (s *AppointmentStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *AppointmentStore) Create(ctx context.Context, appointment *entities.Appointment) error {
	return s.docs.create(ctx, appointment)
}

func (s *AppointmentStore) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.docs.get(ctx, id)
}

func (s *AppointmentStore) List(ctx context.Context) ([]*entities.Appointment, error) {
	return s.docs.list(ctx)
}

func (s *AppointmentStore) Update(ctx context.Context, appointment *entities.Appointment) error {
	return s.docs.update(ctx, appointment)
}

func (s *AppointmentStore) Delete(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.docs.delete(ctx, id)
}

func (s *AppointmentStore) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	return s.docs.listBy(ctx, "by_patient", patientID)
}

func (s *AppointmentStore) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error) {
	return s.docs.listBy(ctx, "by_doctor", doctorID)
}

// MedicalRecordStore implements the MedicalRecordRepository interface on Redis.
// Records are ranked by their date rather than creation time.
type MedicalRecordStore struct {
	docs *collection[entities.MedicalRecord]
}

// NewMedicalRecordStore creates a Redis-backed medical record store
func NewMedicalRecordStore(client *redisclient.Client) repositories.MedicalRecordRepository {
	return &MedicalRecordStore{docs: &collection[entities.MedicalRecord]{
		client:   client,
		kind:     "medical_records",
		notFound: repositories.MedicalRecordNotFound,
		id:       func(r *entities.MedicalRecord) string { return r.ID },
		score:    func(r *entities.MedicalRecord) float64 { return float64(r.Date.UnixNano()) },
		refs: func(r *entities.MedicalRecord) map[string]string {
			return map[string]string{"by_patient": r.PatientID}
		},
	}}
}

func (s *MedicalRecordStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *MedicalRecordStore) Create(ctx context.Context, record *entities.MedicalRecord) error {
	return s.docs.create(ctx, record)
}

func (s *MedicalRecordStore) GetByID(ctx context.Context, id string) (*entities.MedicalRecord, error) {
	return s.docs.get(ctx, id)
}

func (s *MedicalRecordStore) List(ctx context.Context) ([]*entities.MedicalRecord, error) {
	return s.docs.list(ctx)
}

func (s *MedicalRecordStore) Update(ctx context.Context, record *entities.MedicalRecord) error {
	return s.docs.update(ctx, record)
}

func (s *MedicalRecordStore) Delete(ctx context.Context, id string) (*entities.MedicalRecord, error) {
	return s.docs.delete(ctx, id)
}

func (s *MedicalRecordStore) ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error) {
	return s.docs.listBy(ctx, "by_patient", patientID)
}

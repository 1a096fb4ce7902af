package entities

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MedicalRecord is a diagnosis written by a doctor for a patient,
// optionally tied to the appointment it came out of.
type MedicalRecord struct {
	ID            string    `json:"id" db:"id"`
	PatientID     string    `json:"patient_id" db:"patient_id"`
	DoctorID      string    `json:"doctor_id" db:"doctor_id"`
	AppointmentID string    `json:"appointment_id,omitempty" db:"appointment_id"`
	Diagnosis     string    `json:"diagnosis" db:"diagnosis"`
	Prescription  string    `json:"prescription" db:"prescription"`
	Notes         string    `json:"notes" db:"notes"`
	Date          time.Time `json:"date" db:"date"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ValidateReferences checks that the ids needed for existence lookups are present
func (r MedicalRecord) ValidateReferences() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatientID, validation.Required.Error("Patient ID is required")),
		validation.Field(&r.DoctorID, validation.Required.Error("Doctor ID is required")),
	)
}

// Validate checks the required record fields
func (r MedicalRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatientID, validation.Required.Error("Patient ID is required")),
		validation.Field(&r.DoctorID, validation.Required.Error("Doctor ID is required")),
		validation.Field(&r.Diagnosis, validation.Required.Error("Diagnosis is required")),
	)
}

// MedicalRecordInput carries client-supplied record fields. Nil means "not provided".
type MedicalRecordInput struct {
	PatientID     *string `json:"patient_id"`
	DoctorID      *string `json:"doctor_id"`
	AppointmentID *string `json:"appointment_id"`
	Diagnosis     *string `json:"diagnosis"`
	Prescription  *string `json:"prescription"`
	Notes         *string `json:"notes"`
}

// ApplyTo merges the provided fields into r
func (in MedicalRecordInput) ApplyTo(r *MedicalRecord) {
	if in.PatientID != nil {
		r.PatientID = strings.TrimSpace(*in.PatientID)
	}
	if in.DoctorID != nil {
		r.DoctorID = strings.TrimSpace(*in.DoctorID)
	}
	if in.AppointmentID != nil {
		r.AppointmentID = strings.TrimSpace(*in.AppointmentID)
	}
	if in.Diagnosis != nil {
		r.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.Prescription != nil {
		r.Prescription = strings.TrimSpace(*in.Prescription)
	}
	if in.Notes != nil {
		r.Notes = strings.TrimSpace(*in.Notes)
	}
}

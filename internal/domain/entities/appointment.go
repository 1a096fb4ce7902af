package entities

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// InvalidStatusMessage is returned whenever a status outside the enum is supplied
const InvalidStatusMessage = "Invalid status. Must be: pending, confirmed, completed, or cancelled"

var appointmentDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

// IsValid reports whether s is one of the four known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo describes the intended lifecycle:
// pending -> confirmed|cancelled, confirmed -> completed|cancelled,
// completed and cancelled are terminal.
// Status updates only log changes outside it; any valid status may replace any other.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	}
	return false
}

// Appointment links a patient to a doctor at a given date and time.
// PatientID and DoctorID are checked against their services only at creation.
type Appointment struct {
	ID              string            `json:"id" db:"id"`
	PatientID       string            `json:"patient_id" db:"patient_id"`
	DoctorID        string            `json:"doctor_id" db:"doctor_id"`
	AppointmentDate string            `json:"appointment_date" db:"appointment_date"`
	Status          AppointmentStatus `json:"status" db:"status"`
	Complaint       string            `json:"complaint" db:"complaint"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`
}

// ValidateReferences checks that the ids needed for existence lookups are present
func (a Appointment) ValidateReferences() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.PatientID, validation.Required.Error("Patient ID is required")),
		validation.Field(&a.DoctorID, validation.Required.Error("Doctor ID is required")),
	)
}

// Validate checks required fields, the date format and the status enum
func (a Appointment) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.PatientID, validation.Required.Error("Patient ID is required")),
		validation.Field(&a.DoctorID, validation.Required.Error("Doctor ID is required")),
		validation.Field(&a.AppointmentDate,
			validation.Required.Error("Appointment date is required"),
			validation.Match(appointmentDatePattern).Error("Appointment date must be in format YYYY-MM-DD HH:mm"),
		),
		validation.Field(&a.Status,
			validation.Required.Error(InvalidStatusMessage),
			validation.In(
				AppointmentStatusPending, AppointmentStatusConfirmed,
				AppointmentStatusCompleted, AppointmentStatusCancelled,
			).Error(InvalidStatusMessage),
		),
	)
}

// AppointmentInput carries client-supplied appointment fields. Nil means "not provided".
type AppointmentInput struct {
	PatientID       *string `json:"patient_id"`
	DoctorID        *string `json:"doctor_id"`
	AppointmentDate *string `json:"appointment_date"`
	Status          *string `json:"status"`
	Complaint       *string `json:"complaint"`
}

// ApplyTo merges the provided fields into a
func (in AppointmentInput) ApplyTo(a *Appointment) {
	if in.PatientID != nil {
		a.PatientID = strings.TrimSpace(*in.PatientID)
	}
	if in.DoctorID != nil {
		a.DoctorID = strings.TrimSpace(*in.DoctorID)
	}
	if in.AppointmentDate != nil {
		a.AppointmentDate = strings.TrimSpace(*in.AppointmentDate)
	}
	if in.Status != nil {
		a.Status = AppointmentStatus(strings.TrimSpace(*in.Status))
	}
	if in.Complaint != nil {
		a.Complaint = strings.TrimSpace(*in.Complaint)
	}
}

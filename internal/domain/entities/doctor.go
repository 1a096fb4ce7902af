package entities

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Doctor represents a practitioner and their weekly schedule
type Doctor struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Specialization string    `json:"specialization" db:"specialization"`
	Phone          string    `json:"phone" db:"phone"`
	Schedule       []string  `json:"schedule" db:"schedule"` // free-text slots, e.g. "Monday 09:00-12:00"
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Validate checks the required doctor fields
func (d Doctor) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required.Error("Doctor name is required")),
		validation.Field(&d.Specialization, validation.Required.Error("Specialization is required")),
		validation.Field(&d.Phone, validation.Required.Error("Phone number is required")),
	)
}

// DoctorInput carries client-supplied doctor fields. Nil means "not provided".
type DoctorInput struct {
	Name           *string   `json:"name"`
	Specialization *string   `json:"specialization"`
	Phone          *string   `json:"phone"`
	Schedule       *[]string `json:"schedule"`
}

// ApplyTo merges the provided fields into d
func (in DoctorInput) ApplyTo(d *Doctor) {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Specialization != nil {
		d.Specialization = strings.TrimSpace(*in.Specialization)
	}
	if in.Phone != nil {
		d.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Schedule != nil {
		d.Schedule = append([]string{}, (*in.Schedule)...)
	}
	if d.Schedule == nil {
		d.Schedule = []string{}
	}
}

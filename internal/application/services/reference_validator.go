package services

import (
	"context"

	"github.com/zatekoja/smarthealthcare/internal/domain/providers"
	"github.com/zatekoja/smarthealthcare/internal/domain/repositories"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

// Refs names the foreign entities a new document points at.
// An empty AppointmentID means no appointment is referenced.
type Refs struct {
	PatientID     string
	DoctorID      string
	AppointmentID string
}

// ReferenceValidator confirms that referenced entities exist on their owning services
// at the moment of creation. Nothing is locked; a referenced entity may disappear
// right after the check.
type ReferenceValidator struct {
	patients     providers.EntityLookup
	doctors      providers.EntityLookup
	appointments providers.EntityLookup
}

// NewReferenceValidator creates a validator. appointments may be nil when the
// caller never references appointments.
func NewReferenceValidator(patients, doctors, appointments providers.EntityLookup) *ReferenceValidator {
	return &ReferenceValidator{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
	}
}

// Validate checks patient, then doctor, then appointment, and stops at the first failure
func (v *ReferenceValidator) Validate(ctx context.Context, refs Refs) error {
	if err := v.check(ctx, v.patients, refs.PatientID, repositories.PatientNotFound); err != nil {
		return err
	}
	if err := v.check(ctx, v.doctors, refs.DoctorID, repositories.DoctorNotFound); err != nil {
		return err
	}
	if refs.AppointmentID == "" || v.appointments == nil {
		return nil
	}
	return v.check(ctx, v.appointments, refs.AppointmentID, repositories.AppointmentNotFound)
}

func (v *ReferenceValidator) check(ctx context.Context, lookup providers.EntityLookup, id, notFound string) error {
	exists, err := lookup.Exists(ctx, id)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("ref_id", id).Msg("reference lookup failed")
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.NewExternalError("reference lookup failed", err)
	}
	if !exists {
		return apperrors.NewNotFoundError(notFound)
	}
	return nil
}

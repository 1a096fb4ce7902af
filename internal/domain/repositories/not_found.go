package repositories

// Messages carried by NotFound errors. Every store backend uses these so the
// wire message does not depend on the backend in use.
const (
	PatientNotFound       = "Patient not found"
	DoctorNotFound        = "Doctor not found"
	AppointmentNotFound   = "Appointment not found"
	MedicalRecordNotFound = "Medical record not found"
)

package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// PatientService defines the patient operations the REST surface needs
type PatientService interface {
	List(ctx context.Context) ([]*entities.Patient, error)
	Get(ctx context.Context, id string) (*entities.Patient, error)
	Create(ctx context.Context, input entities.PatientInput) (*entities.Patient, error)
	Update(ctx context.Context, id string, input entities.PatientInput) (*entities.Patient, error)
	Delete(ctx context.Context, id string) (*entities.Patient, error)
}

// PatientHandler handles /patients requests
type PatientHandler struct {
	service PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List handles GET /patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err, "Error fetching patients")
		return
	}
	respondWithList(w, patients)
}

// Get handles GET /patients/{id}
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err, "Error fetching patient")
		return
	}
	respondWithData(w, http.StatusOK, "", patient)
}

// Create handles POST /patients
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entities.PatientInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, err, "Error creating patient")
		return
	}

	patient, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondWithError(w, err, "Error creating patient")
		return
	}
	respondWithData(w, http.StatusCreated, "Patient created successfully", patient)
}

// Update handles PUT /patients/{id}
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input entities.PatientInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, err, "Error updating patient")
		return
	}

	patient, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		respondWithError(w, err, "Error updating patient")
		return
	}
	respondWithData(w, http.StatusOK, "Patient updated successfully", patient)
}

// Delete handles DELETE /patients/{id}
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err, "Error deleting patient")
		return
	}
	respondWithData(w, http.StatusOK, "Patient deleted successfully", patient)
}

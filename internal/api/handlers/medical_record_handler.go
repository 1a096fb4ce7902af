package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// MedicalRecordService defines the record operations the REST surface needs
type MedicalRecordService interface {
	List(ctx context.Context) ([]*entities.MedicalRecord, error)
	Get(ctx context.Context, id string) (*entities.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error)
	Create(ctx context.Context, input entities.MedicalRecordInput) (*entities.MedicalRecord, error)
	Update(ctx context.Context, id string, input entities.MedicalRecordInput) (*entities.MedicalRecord, error)
	Delete(ctx context.Context, id string) (*entities.MedicalRecord, error)
}

// MedicalRecordHandler handles /records requests
type MedicalRecordHandler struct {
	service MedicalRecordService
}

// NewMedicalRecordHandler creates a new medical record handler
func NewMedicalRecordHandler(service MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{service: service}
}

// List handles GET /records
func (h *MedicalRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err, "Error fetching medical records")
		return
	}
	respondWithList(w, records)
}

// Get handles GET /records/{id}
func (h *MedicalRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err, "Error fetching medical record")
		return
	}
	respondWithData(w, http.StatusOK, "", record)
}

// ListByPatient handles GET /records/patient/{patientId}
func (h *MedicalRecordHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListByPatient(r.Context(), r.PathValue("patientId"))
	if err != nil {
		respondWithError(w, err, "Error fetching patient records")
		return
	}
	respondWithList(w, records)
}

// Create handles POST /records
func (h *MedicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entities.MedicalRecordInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, err, "Error creating medical record")
		return
	}

	record, err := h.service.Create(context.WithoutCancel(r.Context()), input)
	if err != nil {
		respondWithError(w, err, "Error creating medical record")
		return
	}
	respondWithData(w, http.StatusCreated, "Medical record created successfully", record)
}

// Update handles PUT /records/{id}
func (h *MedicalRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input entities.MedicalRecordInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, err, "Error updating medical record")
		return
	}

	record, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		respondWithError(w, err, "Error updating medical record")
		return
	}
	respondWithData(w, http.StatusOK, "Medical record updated successfully", record)
}

// Delete handles DELETE /records/{id}
func (h *MedicalRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err, "Error deleting medical record")
		return
	}
	respondWithData(w, http.StatusOK, "Medical record deleted successfully", record)
}

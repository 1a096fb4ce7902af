package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// DoctorService defines the doctor operations the REST surface needs
type DoctorService interface {
	List(ctx context.Context) ([]*entities.Doctor, error)
	Get(ctx context.Context, id string) (*entities.Doctor, error)
	Create(ctx context.Context, input entities.DoctorInput) (*entities.Doctor, error)
	Update(ctx context.Context, id string, input entities.DoctorInput) (*entities.Doctor, error)
	Delete(ctx context.Context, id string) (*entities.Doctor, error)
}

// DoctorHandler handles /doctors requests
type DoctorHandler struct {
	service DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// List handles GET /doctors
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err, "Error fetching doctors")
		return
	}
	respondWithList(w, doctors)
}

// Get handles GET /doctors/{id}
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err, "Error fetching doctor")
		return
	}
	respondWithData(w, http.StatusOK, "", doctor)
}

// Create handles POST /doctors
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entities.DoctorInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, err, "Error creating doctor")
		return
	}

	doctor, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondWithError(w, err, "Error creating doctor")
		return
	}
	respondWithData(w, http.StatusCreated, "Doctor created successfully", doctor)
}

// Update handles PUT /doctors/{id}
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input entities.DoctorInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, err, "Error updating doctor")
		return
	}

	doctor, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		respondWithError(w, err, "Error updating doctor")
		return
	}
	respondWithData(w, http.StatusOK, "Doctor updated successfully", doctor)
}

// Delete handles DELETE /doctors/{id}
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err, "Error deleting doctor")
		return
	}
	respondWithData(w, http.StatusOK, "Doctor deleted successfully", doctor)
}

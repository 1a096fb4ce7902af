package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// AppointmentService defines the appointment operations the REST surface needs
type AppointmentService interface {
	List(ctx context.Context) ([]*entities.Appointment, error)
	Get(ctx context.Context, id string) (*entities.Appointment, error)
	Create(ctx context.Context, input entities.AppointmentInput) (*entities.Appointment, error)
	Update(ctx context.Context, id string, input entities.AppointmentInput) (*entities.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*entities.Appointment, error)
	Delete(ctx context.Context, id string) (*entities.Appointment, error)
}

// AppointmentHandler handles /appointments requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// List handles GET /appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err, "Error fetching appointments")
		return
	}
	respondWithList(w, appointments)
}

// Get handles GET /appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err, "Error fetching appointment")
		return
	}
	respondWithData(w, http.StatusOK, "", appointment)
}

// Create handles POST /appointments. The lookups it triggers run on a
// context that outlives a client disconnect.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entities.AppointmentInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, err, "Error creating appointment")
		return
	}

	appointment, err := h.service.Create(context.WithoutCancel(r.Context()), input)
	if err != nil {
		respondWithError(w, err, "Error creating appointment")
		return
	}
	respondWithData(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// Update handles PUT /appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input entities.AppointmentInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, err, "Error updating appointment")
		return
	}

	appointment, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		respondWithError(w, err, "Error updating appointment")
		return
	}
	respondWithData(w, http.StatusOK, "Appointment updated successfully", appointment)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /appointments/{id}/status
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, err, "Error updating appointment status")
		return
	}

	appointment, err := h.service.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondWithError(w, err, "Error updating appointment status")
		return
	}
	respondWithData(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

// Delete handles DELETE /appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err, "Error deleting appointment")
		return
	}
	respondWithData(w, http.StatusOK, "Appointment deleted successfully", appointment)
}

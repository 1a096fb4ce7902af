package handlers

import "net/http"

// HealthHandler reports process liveness
type HealthHandler struct {
	service string
	port    int
}

// NewHealthHandler creates a health handler for the named service, e.g. "Patient Service"
func NewHealthHandler(service string, port int) *HealthHandler {
	return &HealthHandler{service: service, port: port}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"service": h.service,
		"status":  "running",
		"port":    h.port,
	})
}

package routes

import (
	"net/http"

	"github.com/zatekoja/smarthealthcare/internal/api/handlers"
	"github.com/zatekoja/smarthealthcare/internal/api/middleware"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
)

// Router holds the handlers of one service process. Nil handlers are not mounted.
type Router struct {
	mux *http.ServeMux

	patientHandler       *handlers.PatientHandler
	doctorHandler        *handlers.DoctorHandler
	appointmentHandler   *handlers.AppointmentHandler
	medicalRecordHandler *handlers.MedicalRecordHandler
	graphqlHandler       http.Handler
	healthHandler        *handlers.HealthHandler

	metrics        *observability.Metrics
	allowedOrigins []string
}

// Option configures a Router
type Option func(*Router)

// WithPatients mounts the patient REST routes
func WithPatients(h *handlers.PatientHandler) Option {
	return func(r *Router) { r.patientHandler = h }
}

// WithDoctors mounts the doctor REST routes
func WithDoctors(h *handlers.DoctorHandler) Option {
	return func(r *Router) { r.doctorHandler = h }
}

// WithAppointments mounts the appointment REST routes
func WithAppointments(h *handlers.AppointmentHandler) Option {
	return func(r *Router) { r.appointmentHandler = h }
}

// WithMedicalRecords mounts the medical record REST routes
func WithMedicalRecords(h *handlers.MedicalRecordHandler) Option {
	return func(r *Router) { r.medicalRecordHandler = h }
}

// WithGraphQL mounts h on /graphql
func WithGraphQL(h http.Handler) Option {
	return func(r *Router) { r.graphqlHandler = h }
}

// WithHealth mounts the health report
func WithHealth(h *handlers.HealthHandler) Option {
	return func(r *Router) { r.healthHandler = h }
}

// WithMetrics enables request metrics
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// WithAllowedOrigins sets the CORS origins
func WithAllowedOrigins(origins []string) Option {
	return func(r *Router) { r.allowedOrigins = origins }
}

// NewRouter creates a new router
func NewRouter(opts ...Option) *Router {
	r := &Router{mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetupRoutes configures the routes of every mounted handler and wraps the middleware chain
func (r *Router) SetupRoutes() http.Handler {
	if r.healthHandler != nil {
		r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	}

	if h := r.patientHandler; h != nil {
		r.mux.HandleFunc("GET /patients", h.List)
		r.mux.HandleFunc("POST /patients", h.Create)
		r.mux.HandleFunc("GET /patients/{id}", h.Get)
		r.mux.HandleFunc("PUT /patients/{id}", h.Update)
		r.mux.HandleFunc("DELETE /patients/{id}", h.Delete)
	}

	if h := r.doctorHandler; h != nil {
		r.mux.HandleFunc("GET /doctors", h.List)
		r.mux.HandleFunc("POST /doctors", h.Create)
		r.mux.HandleFunc("GET /doctors/{id}", h.Get)
		r.mux.HandleFunc("PUT /doctors/{id}", h.Update)
		r.mux.HandleFunc("DELETE /doctors/{id}", h.Delete)
	}

	if h := r.appointmentHandler; h != nil {
		r.mux.HandleFunc("GET /appointments", h.List)
		r.mux.HandleFunc("POST /appointments", h.Create)
		r.mux.HandleFunc("GET /appointments/{id}", h.Get)
		r.mux.HandleFunc("PUT /appointments/{id}", h.Update)
		r.mux.HandleFunc("PUT /appointments/{id}/status", h.UpdateStatus)
		r.mux.HandleFunc("DELETE /appointments/{id}", h.Delete)
	}

	if h := r.medicalRecordHandler; h != nil {
		r.mux.HandleFunc("GET /records", h.List)
		r.mux.HandleFunc("POST /records", h.Create)
		r.mux.HandleFunc("GET /records/patient/{patientId}", h.ListByPatient)
		r.mux.HandleFunc("GET /records/{id}", h.Get)
		r.mux.HandleFunc("PUT /records/{id}", h.Update)
		r.mux.HandleFunc("DELETE /records/{id}", h.Delete)
	}

	if r.graphqlHandler != nil {
		r.mux.Handle("GET /graphql", r.graphqlHandler)
		r.mux.Handle("POST /graphql", r.graphqlHandler)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

// Package gateway is the single entry point that forwards REST and GraphQL
// calls to the entity services unchanged.
package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/smarthealthcare/internal/api/handlers"
	"github.com/zatekoja/smarthealthcare/internal/api/middleware"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
	"github.com/zatekoja/smarthealthcare/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Options configures the gateway process
type Options struct {
	Version        string
	Port           int
	AllowedOrigins []string
	Metrics        *observability.Metrics
}

// upstream is one entity service behind the gateway
type upstream struct {
	name     string // used in error messages, e.g. "patient"
	resource string // REST collection, e.g. "patients"
	graphql  bool
	proxy    *httputil.ReverseProxy
}

// Gateway forwards /api/... and /graphql/... to the owning service
type Gateway struct {
	opts      Options
	upstreams []*upstream
}

// New creates a gateway for the configured service URLs
func New(services config.ServicesConfig, opts Options) (*Gateway, error) {
	g := &Gateway{opts: opts}

	targets := []struct {
		name, resource, baseURL string
		graphql                 bool
	}{
		{"patient", "patients", services.PatientURL, true},
		{"doctor", "doctors", services.DoctorURL, true},
		{"appointment", "appointments", services.AppointmentURL, true},
		{"medical record", "records", services.MedicalRecordURL, false},
	}

	for _, t := range targets {
		target, err := url.Parse(t.baseURL)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("invalid %s service URL %q", t.name, t.baseURL)
		}
		u := &upstream{name: t.name, resource: t.resource, graphql: t.graphql}
		u.proxy = g.newProxy(u, target)
		g.upstreams = append(g.upstreams, u)
	}

	return g, nil
}

func (g *Gateway) newProxy(u *upstream, target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = target.Scheme
			pr.Out.URL.Host = target.Host
			pr.Out.URL.Path = strings.TrimSuffix(target.Path, "/") + upstreamPath(pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.Out.Host = target.Host
			pr.SetXForwarded()
			otel.GetTextMapPropagator().Inject(pr.Out.Context(), propagation.HeaderCarrier(pr.Out.Header))
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			observability.RecordUpstreamError(r.Context(), g.opts.Metrics, u.name)
			observability.LoggerFromContext(r.Context()).Error().
				Err(err).
				Str("upstream", u.name).
				Str("path", r.URL.Path).
				Msg("upstream request failed")

			writeJSON(w, http.StatusInternalServerError, handlers.Envelope{
				Message: fmt.Sprintf("Error contacting %s service", u.name),
				Error:   err.Error(),
			})
		},
	}
}

// upstreamPath maps a gateway path onto the service's native path:
// /api/patients/1 -> /patients/1, /graphql/patients -> /graphql
func upstreamPath(path string) string {
	if strings.HasPrefix(path, "/graphql/") {
		return "/graphql"
	}
	return strings.TrimPrefix(path, "/api")
}

// Handler builds the route table wrapped in the shared middleware chain
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()

	health := handlers.NewHealthHandler("API Gateway", g.opts.Port)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /{$}", g.describe)

	for _, u := range g.upstreams {
		collection := "/api/" + u.resource
		mux.Handle("GET "+collection, u.proxy)
		mux.Handle("POST "+collection, u.proxy)
		mux.Handle("GET "+collection+"/{id}", u.proxy)
		mux.Handle("PUT "+collection+"/{id}", u.proxy)
		mux.Handle("DELETE "+collection+"/{id}", u.proxy)

		switch u.resource {
		case "appointments":
			mux.Handle("PUT "+collection+"/{id}/status", u.proxy)
		case "records":
			mux.Handle("GET "+collection+"/patient/{patientId}", u.proxy)
		}

		if u.graphql {
			mux.Handle("GET /graphql/"+u.resource, u.proxy)
			mux.Handle("POST /graphql/"+u.resource, u.proxy)
		}
	}

	var handler http.Handler = mux
	handler = middleware.ObservabilityMiddleware(g.opts.Metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.CORSMiddleware(g.opts.AllowedOrigins)(handler)

	return handler
}

// describe handles GET /
func (g *Gateway) describe(w http.ResponseWriter, r *http.Request) {
	base := "http://" + r.Host
	endpoints := map[string]string{}
	graphqlEndpoints := map[string]string{}
	for _, u := range g.upstreams {
		key := u.resource
		if key == "records" {
			key = "medical_records"
		}
		endpoints[key] = base + "/api/" + u.resource
		if u.graphql {
			graphqlEndpoints[u.resource] = base + "/graphql/" + u.resource
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Smart Healthcare System API Gateway",
		"version":   g.opts.Version,
		"endpoints": endpoints,
		"graphql":   graphqlEndpoints,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

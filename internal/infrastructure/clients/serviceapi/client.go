package serviceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/zatekoja/smarthealthcare/internal/domain/providers"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

// Client looks up single entities on another service's REST surface:
// GET {baseURL}/{collection}/{id}.
type Client struct {
	baseURL    string
	collection string
	service    string
	httpClient *http.Client
}

var _ providers.EntityLookup = (*Client)(nil)

// NewClient creates a lookup client. A zero timeout keeps the transport default.
func NewClient(service, baseURL, collection string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: strings.Trim(collection, "/"),
		service:    service,
		httpClient: &http.Client{
			Timeout: timeout,
			// A redirect never lands on the requested entity; report it as-is.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// NewPatientLookup checks patients on the patient service
func NewPatientLookup(baseURL string, timeout time.Duration) *Client {
	return NewClient("patient", baseURL, "patients", timeout)
}

// NewDoctorLookup checks doctors on the doctor service
func NewDoctorLookup(baseURL string, timeout time.Duration) *Client {
	return NewClient("doctor", baseURL, "doctors", timeout)
}

// NewAppointmentLookup checks appointments on the appointment service
func NewAppointmentLookup(baseURL string, timeout time.Duration) *Client {
	return NewClient("appointment", baseURL, "appointments", timeout)
}

type lookupEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Exists reports whether the owning service has an entity with this id.
// A 404 is the only definitive "no". Any other non-2xx answer (redirects
// included), a transport failure, or a body that is not a successful envelope
// carrying one JSON object is an EXTERNAL error.
func (c *Client) Exists(ctx context.Context, id string) (bool, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.collection, url.PathEscape(id))

	ctx, span := otel.Tracer("serviceapi").Start(ctx, "lookup "+c.collection,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("peer.service", c.service),
			attribute.String("http.url", endpoint),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, apperrors.NewInternalError("failed to build lookup request", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return false, apperrors.NewExternalError(fmt.Sprintf("%s service unavailable", c.service), err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, resp.Status)
		return false, apperrors.NewExternalError(
			fmt.Sprintf("%s service returned status %d", c.service, resp.StatusCode), nil)
	}

	var envelope lookupEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		span.RecordError(err)
		return false, apperrors.NewExternalError(fmt.Sprintf("%s service returned a malformed body", c.service), err)
	}
	if !envelope.Success || !isJSONObject(envelope.Data) {
		span.SetStatus(codes.Error, "malformed body")
		return false, apperrors.NewExternalError(fmt.Sprintf("%s service returned a malformed body", c.service), nil)
	}
	return true, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

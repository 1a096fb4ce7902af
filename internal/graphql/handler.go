// Package graphql serves a graphql-go schema over HTTP.
package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/zatekoja/smarthealthcare/internal/infrastructure/observability"
)

// Request is a GraphQL-over-HTTP request body
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
}

// Handler executes requests against one schema
type Handler struct {
	schema gql.Schema
}

// NewHandler creates a new GraphQL handler
func NewHandler(schema gql.Schema) *Handler {
	return &Handler{schema: schema}
}

// ServeHTTP accepts POST application/json and GET ?query=. Mutations require POST.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if raw := q.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				writeErrors(w, http.StatusBadRequest, "Variables are invalid JSON.")
				return
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrors(w, http.StatusBadRequest, "POST body sent invalid JSON.")
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeErrors(w, http.StatusMethodNotAllowed, "GraphQL only supports GET and POST requests.")
		return
	}

	if req.Query == "" {
		writeErrors(w, http.StatusBadRequest, "Must provide query string.")
		return
	}
	if r.Method == http.MethodGet && operationType(req.Query, req.OperationName) == ast.OperationTypeMutation {
		w.Header().Set("Allow", "POST")
		writeErrors(w, http.StatusMethodNotAllowed, "Can only perform a mutation operation from a POST request.")
		return
	}

	ctx, span := observability.StartSpan(r.Context(), "graphql.execute")
	defer span.End()

	// Mutations finish their store writes even if the caller disconnects
	result := gql.Do(gql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        context.WithoutCancel(ctx),
	})

	status := http.StatusOK
	if result.HasErrors() && result.Data == nil {
		status = http.StatusBadRequest
	}
	if result.HasErrors() {
		observability.LoggerFromContext(ctx).Debug().
			Interface("errors", result.Errors).
			Msg("graphql request returned errors")
	}

	writeJSON(w, status, result)
}

// operationType returns the type of the operation that would run, or "" when
// the document does not parse or the operation cannot be selected.
func operationType(query, operationName string) string {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return ""
	}
	var selected *ast.OperationDefinition
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName == "" {
			if selected != nil {
				return ""
			}
			selected = op
			continue
		}
		if op.Name != nil && op.Name.Value == operationName {
			return op.Operation
		}
	}
	if selected == nil {
		return ""
	}
	return selected.Operation
}

func writeErrors(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"errors": []map[string]string{{"message": message}},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

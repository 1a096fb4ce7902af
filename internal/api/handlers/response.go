package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

// Envelope is the body shape of every REST response
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithData(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	respondWithJSON(w, statusCode, Envelope{Success: true, Message: message, Data: data})
}

func respondWithList[T any](w http.ResponseWriter, items []T) {
	count := len(items)
	if items == nil {
		items = []T{}
	}
	respondWithJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: items})
}

// respondWithError maps err onto the envelope. failure is the message used
// when the error does not carry one meant for clients.
func respondWithError(w http.ResponseWriter, err error, failure string) {
	appErr, ok := apperrors.As(err)
	if !ok {
		log.Error().Err(err).Msg(failure)
		respondWithJSON(w, http.StatusInternalServerError, Envelope{Message: failure, Error: err.Error()})
		return
	}

	status := apperrors.HTTPStatus(err)
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		respondWithJSON(w, status, Envelope{Message: appErr.Message})
	case apperrors.ErrorTypeExternal:
		log.Warn().Err(err).Msg("upstream service unavailable")
		respondWithJSON(w, status, Envelope{Message: "Upstream service unavailable", Error: appErr.Detail()})
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeConflict:
		respondWithJSON(w, status, Envelope{Message: failure, Error: appErr.Detail()})
	default:
		log.Error().Err(err).Msg(failure)
		respondWithJSON(w, status, Envelope{Message: failure, Error: appErr.Detail()})
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request payload: " + err.Error())
	}
	return nil
}

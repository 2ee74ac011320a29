package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"urban-turban/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON error body. Field is present only for validation
// errors that name an offending input.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeJSON writes a JSON response with the given status code. The status
// line is already sent when encoding starts, so an encode failure cannot be
// reported to the client.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// statusFor maps a domain error kind to an HTTP status code.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation, model.KindInvalidState:
		return http.StatusBadRequest
	case model.KindUnauthorized:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError translates an error into the JSON error contract. Domain errors
// carry their own status and client-safe message; anything else becomes an
// opaque 500.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	kind := model.KindOf(err)
	if kind == "" {
		logger.Error().Err(err).Msg("handler error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		return
	}

	var de *model.DomainError
	errors.As(err, &de)

	status := statusFor(kind)
	logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	writeJSON(w, status, ErrorResponse{Message: de.Message, Field: de.Field})
}

// decodeJSON decodes the request body into dst, rejecting malformed input.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("Invalid request body", "")
	}
	return nil
}

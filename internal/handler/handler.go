package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AdamZoda/voiture/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Status and headers are already on the wire; nothing left to send.
		return
	}
}

// writeError writes a generic error response with the given status code.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("message", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service-layer error onto the response
// envelope. Domain errors keep their code and message; anything else is
// surfaced as a generic internal error with the detail logged only.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusForCode(domainErr.Code), model.ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
		})
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "Something went wrong",
	})
}

// statusForCode maps domain error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeCategoryNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case model.ErrCodeCategoryExists, model.ErrCodeCategoryInUse, model.ErrCodeUserExists:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into dst, reporting a uniform
// INVALID_JSON envelope on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "Invalid request body", logger)
		return false
	}
	return true
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iho/escrowledger/internal/adapter/http/dto"
	"github.com/iho/escrowledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError writes the error body for err with the status of its kind.
// The diagnostic trace is only exposed for server-side faults.
func writeError(w http.ResponseWriter, err error) {
	status, kind := mapDomainError(err)

	resp := dto.ErrorResponse{
		Error:   kind,
		Message: domain.Message(err),
	}
	if status >= http.StatusInternalServerError {
		resp.Trace = domain.Trace(err)
		log.Error().Err(err).Str("trace", resp.Trace).Msg("request failed")
	}

	writeJSON(w, status, resp)
}

// mapDomainError maps domain errors to HTTP status codes and kind labels.
// Unclassified errors are reported as bad requests.
func mapDomainError(err error) (int, string) {
	switch kind := domain.Kind(err); kind {
	case "NotFound":
		return http.StatusNotFound, kind
	case "Conflict":
		return http.StatusConflict, kind
	case "InternalServerError":
		return http.StatusInternalServerError, kind
	default:
		return http.StatusBadRequest, "BadRequest"
	}
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.WrapError(domain.ErrInvalidValue, err, "invalid request body")
	}
	return nil
}

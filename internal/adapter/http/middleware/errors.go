package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iho/escrowledger/internal/adapter/http/dto"
)

func writeJSONError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: kind, Message: message})
}

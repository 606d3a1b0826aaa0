package handler

import (
	"context"
	"net/http"

	"github.com/iho/escrowledger/internal/domain"
)

// OperatorFromContext extracts the authenticated operator from a request context.
type OperatorFromContext func(ctx context.Context) (*domain.Operator, bool)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	operator OperatorFromContext
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(operator OperatorFromContext) *AuthHandler {
	return &AuthHandler{operator: operator}
}

// OperatorResponse describes the caller of an authenticated request
type OperatorResponse struct {
	Subject string      `json:"subject"`
	Role    domain.Role `json:"role"`
}

// Me returns the operator the bearer token was issued to
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	op, ok := h.operator(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "Unauthorized",
			"message": domain.ErrUnauthorized.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, OperatorResponse{Subject: op.Subject, Role: op.Role})
}

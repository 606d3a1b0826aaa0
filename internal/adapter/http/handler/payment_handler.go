package handler

import (
	"context"
	"net/http"

	"github.com/iho/escrowledger/internal/adapter/http/dto"
	"github.com/iho/escrowledger/internal/usecase"
)

type paymentService interface {
	GeneratePayment(ctx context.Context, input usecase.GeneratePaymentInput) (*usecase.PaymentResult, error)
}

// PaymentHandler handles payment HTTP requests.
type PaymentHandler struct {
	paymentUC paymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC paymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Generate builds an unsigned payment envelope.
func (h *PaymentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GeneratePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.paymentUC.GeneratePayment(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromResult(result))
}

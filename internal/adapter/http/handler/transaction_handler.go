package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/escrowledger/internal/adapter/http/dto"
	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
)

type transactionService interface {
	Submit(ctx context.Context, envelopeXDR string) (*domain.SubmitResult, error)
	GetTransaction(ctx context.Context, hash string) (*usecase.TransactionView, error)
}

// TransactionHandler handles signed envelope submission and lookups.
type TransactionHandler struct {
	transactionUC transactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC transactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Submit posts a signed envelope to the ledger.
func (h *TransactionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.transactionUC.Submit(r.Context(), req.XDR)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SubmitFromDomain(result))
}

// Get returns a transaction and its operations.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.transactionUC.GetTransaction(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromView(view))
}

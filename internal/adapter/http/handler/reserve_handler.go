package handler

import (
	"net/http"

	"github.com/iho/escrowledger/internal/adapter/http/dto"
	"github.com/iho/escrowledger/internal/domain"
)

// ReserveHandler exposes the reserve calculator.
type ReserveHandler struct {
	calculator domain.ReserveCalculator
}

// NewReserveHandler creates a new ReserveHandler.
func NewReserveHandler(calculator domain.ReserveCalculator) *ReserveHandler {
	return &ReserveHandler{calculator: calculator}
}

// Calculate returns the minimum native balance for the queried entries and transactions.
func (h *ReserveHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	q, err := dto.ParseReserveQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	reserve, err := h.calculator.Calculate(q.Entries, q.Transactions, q.Policy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReserveResponse{
		Entries:      q.Entries,
		Transactions: q.Transactions,
		Policy:       q.Policy.Name,
		Reserve:      reserve,
	})
}

package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/escrowledger/internal/adapter/http/dto"
	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
)

type escrowService interface {
	GenerateEscrowWallet(ctx context.Context, input usecase.GenerateEscrowWalletInput) (*usecase.EscrowWalletResult, error)
	GenerateLegacyEscrowWallet(ctx context.Context, input usecase.GenerateEscrowWalletInput) (*usecase.EscrowWalletResult, error)
	CloseEscrowWallet(ctx context.Context, input usecase.CloseEscrowWalletInput) (*usecase.CloseEscrowResult, error)
	GenerateJointWallet(ctx context.Context, input usecase.GenerateJointWalletInput) (*usecase.JointWalletResult, error)
	GetEscrowWallet(ctx context.Context, address string) (*domain.EscrowWalletDetail, error)
}

// EscrowHandler handles escrow and joint wallet HTTP requests.
type EscrowHandler struct {
	escrowUC escrowService
	platform domain.Platform
}

// NewEscrowHandler creates a new EscrowHandler.
func NewEscrowHandler(escrowUC escrowService, platform domain.Platform) *EscrowHandler {
	return &EscrowHandler{escrowUC: escrowUC, platform: platform}
}

// Generate builds an escrow envelope with the current reserve policy.
func (h *EscrowHandler) Generate(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.escrowUC.GenerateEscrowWallet)
}

// GenerateLegacy builds an escrow envelope with the legacy reserve policy.
func (h *EscrowHandler) GenerateLegacy(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.escrowUC.GenerateLegacyEscrowWallet)
}

func (h *EscrowHandler) generate(w http.ResponseWriter, r *http.Request, build func(context.Context, usecase.GenerateEscrowWalletInput) (*usecase.EscrowWalletResult, error)) {
	var req dto.GenerateEscrowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := build(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EscrowFromResult(result))
}

// Get returns the decoded state of an escrow account.
func (h *EscrowHandler) Get(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	detail, err := h.escrowUC.GetEscrowWallet(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EscrowDetailFromDomain(detail, h.platform.EscrowURL(detail.Address)))
}

// Close builds the merge envelope of an escrow. The body is optional.
func (h *EscrowHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseEscrowRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, err)
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.escrowUC.CloseEscrowWallet(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CloseEscrowFromResult(result))
}

// GenerateJoint builds a joint wallet envelope.
func (h *EscrowHandler) GenerateJoint(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateJointWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.escrowUC.GenerateJointWallet(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JointWalletFromResult(result))
}

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/escrowledger/internal/adapter/http/dto"
	"github.com/iho/escrowledger/internal/usecase"
)

type walletService interface {
	CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*usecase.WalletResult, error)
	CreateTrustWallet(ctx context.Context, input usecase.CreateWalletInput) (*usecase.WalletResult, error)
	GetWallet(ctx context.Context, address string) (*usecase.WalletView, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC walletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC walletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Create builds an unsigned wallet creation envelope.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.walletUC.CreateWallet)
}

// CreateTrust builds an unsigned wallet creation envelope with a platform trustline.
func (h *WalletHandler) CreateTrust(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.walletUC.CreateTrustWallet)
}

func (h *WalletHandler) create(w http.ResponseWriter, r *http.Request, build func(context.Context, usecase.CreateWalletInput) (*usecase.WalletResult, error)) {
	var req dto.CreateWalletRequest
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

	writeJSON(w, http.StatusOK, dto.WalletFromResult(result))
}

// Get returns the projected state of an account.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.walletUC.GetWallet(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromView(view))
}

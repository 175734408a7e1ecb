package wallets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rotafacil/wallet-core/pkg/gateway"
	"github.com/rotafacil/wallet-core/pkg/ledger"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
)

const defaultEntryLimit = 50

// WalletsHandler holds the dependencies for wallet-related handlers.
type WalletsHandler struct {
	Ledger  *ledger.Service
	Charges storage.ChargeStore
	Gateway gateway.Client
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(ledgerSvc *ledger.Service, charges storage.ChargeStore, gw gateway.Client) *WalletsHandler {
	return &WalletsHandler{Ledger: ledgerSvc, Charges: charges, Gateway: gw}
}

// GetWallet handles the logic for retrieving an owner's wallet.
func (h *WalletsHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	walletID := models.WalletID(models.OwnerType(chi.URLParam(r, "ownerType")), chi.URLParam(r, "ownerId"))

	wallet, err := h.Ledger.GetWallet(r.Context(), walletID)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, wallet)
}

// ListEntries handles the logic for retrieving a wallet's recent ledger
// entries, most recent first.
func (h *WalletsHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	walletID := models.WalletID(models.OwnerType(chi.URLParam(r, "ownerType")), chi.URLParam(r, "ownerId"))

	limit := int64(defaultEntryLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.Ledger.ListEntries(r.Context(), walletID, int32(limit))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve ledger entries: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// RechargeRequest is the body of a recharge call.
type RechargeRequest struct {
	Amount models.Cents `json:"amount"`
}

// Recharge handles the logic for starting a company wallet top-up: a charge is
// created at the settlement provider and returned with its payment codes. The
// wallet is credited only when the provider confirms payment.
func (h *WalletsHandler) Recharge(w http.ResponseWriter, r *http.Request) {
	ownerType := models.OwnerType(chi.URLParam(r, "ownerType"))
	ownerID := chi.URLParam(r, "ownerId")

	var req RechargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "Amount must be positive", http.StatusBadRequest)
		return
	}

	wallet, err := h.Ledger.GetOrCreateWallet(r.Context(), ownerType, ownerID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to resolve wallet: %v", err), http.StatusInternalServerError)
		return
	}

	reference := uuid.New().String()
	result, err := h.Gateway.CreateCharge(r.Context(), req.Amount, reference)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create charge: %v", err), http.StatusBadGateway)
		return
	}

	now := time.Now()
	charge, err := h.Charges.CreateCharge(r.Context(), &models.Charge{
		ID:          reference,
		WalletID:    wallet.ID,
		Type:        models.ChargeRecharge,
		Amount:      req.Amount,
		ProviderRef: result.ChargeRef,
		Status:      models.ChargeWaitingPayment,
		QRCode:      result.QRCode,
		BRCode:      result.BRCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to persist charge: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, charge)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

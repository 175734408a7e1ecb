package withdrawals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotafacil/wallet-core/pkg/gateway"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
	"github.com/rotafacil/wallet-core/pkg/withdrawal"
)

// WithdrawalsHandler holds the dependencies for payout handlers.
type WithdrawalsHandler struct {
	Manager *withdrawal.Manager
	Store   storage.WithdrawalStore
}

// NewWithdrawalsHandler creates a new WithdrawalsHandler.
func NewWithdrawalsHandler(manager *withdrawal.Manager, store storage.WithdrawalStore) *WithdrawalsHandler {
	return &WithdrawalsHandler{Manager: manager, Store: store}
}

// RequestWithdrawal is the body of a payout request. A nil amount withdraws
// the whole available balance.
type RequestWithdrawal struct {
	DriverID    string            `json:"driver_id"`
	Amount      *models.Cents     `json:"amount,omitempty"`
	DestKey     string            `json:"destination_key"`
	DestKeyType models.PixKeyType `json:"destination_key_type"`
}

// Request handles the logic for starting a driver payout.
func (h *WithdrawalsHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req RequestWithdrawal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.DriverID == "" {
		http.Error(w, "driver_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.Manager.Request(r.Context(), req.DriverID, req.Amount, req.DestKey, req.DestKeyType)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrRateLimitExceeded):
			http.Error(w, fmt.Sprintf("Rate limit exceeded: %v", err), http.StatusTooManyRequests)
		case errors.Is(err, storage.ErrInvalidAmount):
			http.Error(w, fmt.Sprintf("Invalid amount: %v", err), http.StatusBadRequest)
		case errors.Is(err, storage.ErrInsufficientBalance):
			http.Error(w, fmt.Sprintf("Insufficient balance: %v", err), http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrSubaccountNotConfigured):
			http.Error(w, "Destination key is not configured", http.StatusUnprocessableEntity)
		case errors.Is(err, gateway.ErrGateway):
			http.Error(w, fmt.Sprintf("Settlement provider rejected the transfer: %v", err), http.StatusBadGateway)
		default:
			http.Error(w, fmt.Sprintf("Failed to request withdrawal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Get handles the logic for retrieving a withdrawal by its id.
func (h *WithdrawalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	withdrawalID := chi.URLParam(r, "withdrawalId")

	result, err := h.Store.GetWithdrawal(r.Context(), withdrawalID)
	if err != nil {
		if errors.Is(err, storage.ErrReconciliationNotFound) {
			http.Error(w, "Withdrawal not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve withdrawal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

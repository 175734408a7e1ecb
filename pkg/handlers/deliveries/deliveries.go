package deliveries

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/split"
	"github.com/rotafacil/wallet-core/pkg/storage"
)

// DeliveriesHandler holds the dependencies for delivery payment handlers.
type DeliveriesHandler struct {
	Engine *split.Engine
}

// NewDeliveriesHandler creates a new DeliveriesHandler.
func NewDeliveriesHandler(engine *split.Engine) *DeliveriesHandler {
	return &DeliveriesHandler{Engine: engine}
}

// ProcessSplit handles the logic for splitting one delivery's payment.
func (h *DeliveriesHandler) ProcessSplit(w http.ResponseWriter, r *http.Request) {
	var delivery split.Delivery
	if err := json.NewDecoder(r.Body).Decode(&delivery); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if delivery.DeliveryID == "" || delivery.CompanyID == "" || delivery.DriverID == "" {
		http.Error(w, "delivery_id, company_id and driver_id are required", http.StatusBadRequest)
		return
	}
	if delivery.TotalAmount <= 0 {
		http.Error(w, "total_amount must be positive", http.StatusBadRequest)
		return
	}

	result, err := h.Engine.ProcessDeliverySplit(r.Context(), &delivery)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInsufficientBalance):
			http.Error(w, fmt.Sprintf("Insufficient balance: %v", err), http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrWalletInactive):
			http.Error(w, "Wallet is suspended", http.StatusUnprocessableEntity)
		default:
			http.Error(w, fmt.Sprintf("Failed to process split: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GuardRequest is the body of a delivery-creation guard call.
type GuardRequest struct {
	CompanyID       string             `json:"company_id"`
	PaymentMode     models.PaymentMode `json:"payment_mode"`
	EstimatedAmount models.Cents       `json:"estimated_amount"`
}

// CanRequest handles the delivery-creation guard consumed by dispatch:
// post-paid companies always pass, pre-paid companies need the balance.
func (h *DeliveriesHandler) CanRequest(w http.ResponseWriter, r *http.Request) {
	var req GuardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.CompanyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}

	guard, err := h.Engine.CanCompanyRequestDelivery(r.Context(), req.CompanyID, req.PaymentMode, req.EstimatedAmount)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to evaluate guard: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(guard); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

package webhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rotafacil/wallet-core/pkg/reconciler"
)

// maxPayloadBytes bounds an inbound webhook body.
const maxPayloadBytes = 1 << 20

// WebhooksHandler holds the dependencies for settlement event handlers.
type WebhooksHandler struct {
	Reconciler *reconciler.Reconciler
}

// NewWebhooksHandler creates a new WebhooksHandler.
func NewWebhooksHandler(rec *reconciler.Reconciler) *WebhooksHandler {
	return &WebhooksHandler{Reconciler: rec}
}

// HandleSettlementEvent receives one provider event. The endpoint acknowledges
// receipt whenever the event was durably logged; processing failures stay on
// the event row and never surface to the provider.
func (h *WebhooksHandler) HandleSettlementEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Reconciler.HandleEvent(r.Context(), payload); err != nil {
		// The event could not be logged; a 5xx makes the provider redeliver.
		http.Error(w, fmt.Sprintf("Failed to log event: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"received": true}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

package storage

import (
	"context"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// WebhookStore defines the interface for the inbound event audit log.
type WebhookStore interface {
	// LogEvent durably stores the raw event before any side effect runs.
	LogEvent(ctx context.Context, event *models.WebhookEvent) (*models.WebhookEvent, error)

	// MarkEventProcessed records the processing outcome on the logged event.
	// The log row itself always survives, whatever happened downstream.
	MarkEventProcessed(ctx context.Context, eventID string, processed bool, errorMessage string) error
}

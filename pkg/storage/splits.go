package storage

import (
	"context"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// Attribute names accepted by RecordSplitEntry.
const (
	SplitFieldCompanyDebit     = "company_debit_entry_id"
	SplitFieldDriverCredit     = "driver_credit_entry_id"
	SplitFieldCommissionCredit = "commission_credit_entry_id"
)

// SplitStore defines the interface for delivery split records.
type SplitStore interface {
	// CreateSplit persists a new split keyed by delivery id. If a split for
	// the delivery already exists the existing record is returned with
	// ErrAlreadyProcessed.
	CreateSplit(ctx context.Context, split *models.DeliverySplit) (*models.DeliverySplit, error)

	// GetSplitByDelivery retrieves the split for a delivery, or nil when none
	// exists.
	GetSplitByDelivery(ctx context.Context, deliveryID string) (*models.DeliverySplit, error)

	// RecordSplitEntry stores one of the three ledger entry ids on the split
	// so an interrupted immediate split can resume from the last completed
	// step. Field must be one of the *_entry_id attributes.
	RecordSplitEntry(ctx context.Context, deliveryID, field, entryID string) error

	// MarkSplitProcessed flips processed false to true. Returns
	// ErrAlreadyProcessed when it already is.
	MarkSplitProcessed(ctx context.Context, deliveryID string) error

	// ListPendingClosing retrieves deferred splits not yet attached to a
	// closing charge.
	ListPendingClosing(ctx context.Context) ([]models.DeliverySplit, error)

	// AttachCharge stamps the closing charge onto a batch of splits and
	// removes them from the pending-closing index.
	AttachCharge(ctx context.Context, deliveryIDs []string, chargeID string) error

	// ListSplitsByCharge retrieves every split attached to a closing charge.
	ListSplitsByCharge(ctx context.Context, chargeID string) ([]models.DeliverySplit, error)

	// SettleDeferredSplit atomically credits the driver and platform wallets,
	// appends both ledger entries and flips the split to processed, in one
	// storage transaction. Returns ErrAlreadyProcessed for an already-settled
	// split.
	SettleDeferredSplit(ctx context.Context, split *models.DeliverySplit, platformWalletID string) error
}

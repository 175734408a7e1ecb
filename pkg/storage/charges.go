package storage

import (
	"context"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// ChargeStore defines the interface for external payment requests.
type ChargeStore interface {
	// CreateCharge persists a new charge in waiting_payment.
	CreateCharge(ctx context.Context, charge *models.Charge) (*models.Charge, error)

	// GetCharge retrieves a charge by its id.
	GetCharge(ctx context.Context, chargeID string) (*models.Charge, error)

	// GetChargeByProviderRef looks a charge up by the settlement provider's
	// reference id. Returns ErrReconciliationNotFound when unknown.
	GetChargeByProviderRef(ctx context.Context, providerRef string) (*models.Charge, error)

	// ConfirmRechargeCharge atomically transitions a recharge charge from
	// waiting_payment to confirmed, credits its wallet and appends the ledger
	// entry, all in one storage transaction. Returns ErrAlreadyProcessed if
	// the charge already left waiting_payment.
	ConfirmRechargeCharge(ctx context.Context, charge *models.Charge) (*models.Wallet, *models.LedgerEntry, error)

	// TransitionCharge moves a charge from waiting_payment (or overdue) to the
	// given terminal status without touching balances. Returns
	// ErrAlreadyProcessed when the charge is already there.
	TransitionCharge(ctx context.Context, chargeID string, to models.ChargeStatus) error
}

package storage

import (
	"context"
	"time"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// WithdrawalStore defines the interface for driver payouts.
type WithdrawalStore interface {
	// CreateWithdrawal atomically blocks the withdrawal amount on the driver
	// wallet, appends the balance_block entry and persists the withdrawal row
	// in processing, all in one storage transaction. Fails with
	// ErrInsufficientBalance when the available balance does not cover it.
	CreateWithdrawal(ctx context.Context, w *models.Withdrawal) (*models.Withdrawal, error)

	// GetWithdrawal retrieves a withdrawal by its id.
	GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)

	// GetWithdrawalByTransferRef looks a withdrawal up by the provider's
	// transfer reference. Returns ErrReconciliationNotFound when unknown.
	GetWithdrawalByTransferRef(ctx context.Context, transferRef string) (*models.Withdrawal, error)

	// SetWithdrawalTransferRef records the provider transfer reference on a
	// processing withdrawal.
	SetWithdrawalTransferRef(ctx context.Context, withdrawalID, transferRef string) error

	// CompleteWithdrawal atomically confirms the blocked debit on the driver
	// wallet, appends the withdrawal ledger entry, credits the fee to the
	// platform wallet and transitions the withdrawal from processing to
	// completed. Returns ErrAlreadyProcessed when the withdrawal is already
	// terminal.
	CompleteWithdrawal(ctx context.Context, w *models.Withdrawal, platformWalletID string) error

	// FailWithdrawal atomically releases the blocked amount back to available,
	// appends the balance_unblock entry and transitions the withdrawal from
	// processing to failed with the given reason. Returns ErrAlreadyProcessed
	// when the withdrawal is already terminal.
	FailWithdrawal(ctx context.Context, w *models.Withdrawal, reason string) error

	// ListWithdrawalsByDriverSince retrieves a driver's withdrawals created at
	// or after the cutoff, most recent first.
	ListWithdrawalsByDriverSince(ctx context.Context, driverID string, since time.Time) ([]models.Withdrawal, error)
}

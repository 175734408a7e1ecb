package storage

import (
	"context"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// WalletStore defines the interface for wallet balances and their ledger.
// Every mutating operation executes as one atomic unit against a single
// wallet row and appends exactly one ledger entry; two concurrent debits
// against the same wallet never both succeed on a balance that covers one.
type WalletStore interface {
	// GetOrCreateWallet returns the wallet for the owner, creating it if
	// absent. Concurrent callers converge on a single row.
	GetOrCreateWallet(ctx context.Context, ownerType models.OwnerType, ownerID string) (*models.Wallet, error)

	// GetWallet retrieves a wallet by its id.
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)

	// Credit increases the available balance.
	Credit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error)

	// Debit decreases the available balance. Unless allowNegative is set it
	// fails with ErrInsufficientBalance when the balance does not cover the
	// amount, leaving all state unchanged.
	Debit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink, allowNegative bool) (*models.Wallet, *models.LedgerEntry, error)

	// BlockBalance moves amount from available to blocked.
	BlockBalance(ctx context.Context, walletID string, amount models.Cents, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error)

	// UnblockBalance moves amount from blocked back to available.
	UnblockBalance(ctx context.Context, walletID string, amount models.Cents, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error)

	// ConfirmBlockedDebit removes amount from blocked permanently, appending a
	// debit entry whose balance snapshot is the combined available+blocked
	// total.
	ConfirmBlockedDebit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error)
}

package ledger

import (
	"context"

	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
)

// Service is the wallet ledger. All money movement in the system passes
// through it; no other component writes balances directly.
type Service struct {
	Wallets storage.WalletStore
	Entries storage.LedgerReader
}

// NewService creates a new ledger Service.
func NewService(wallets storage.WalletStore, entries storage.LedgerReader) *Service {
	return &Service{Wallets: wallets, Entries: entries}
}

// GetOrCreateWallet returns the owner's wallet, creating it on first use.
func (s *Service) GetOrCreateWallet(ctx context.Context, ownerType models.OwnerType, ownerID string) (*models.Wallet, error) {
	return s.Wallets.GetOrCreateWallet(ctx, ownerType, ownerID)
}

// GetWallet retrieves a wallet by its id.
func (s *Service) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	return s.Wallets.GetWallet(ctx, walletID)
}

// Credit increases the wallet's available balance and appends the ledger entry.
func (s *Service) Credit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error) {
	return s.Wallets.Credit(ctx, walletID, amount, entryType, link)
}

// Debit decreases the wallet's available balance and appends the ledger entry.
func (s *Service) Debit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink, allowNegative bool) (*models.Wallet, *models.LedgerEntry, error) {
	return s.Wallets.Debit(ctx, walletID, amount, entryType, link, allowNegative)
}

// BlockBalance reserves amount by moving it from available to blocked.
func (s *Service) BlockBalance(ctx context.Context, walletID string, amount models.Cents, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error) {
	return s.Wallets.BlockBalance(ctx, walletID, amount, link)
}

// UnblockBalance releases a reservation back to available.
func (s *Service) UnblockBalance(ctx context.Context, walletID string, amount models.Cents, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error) {
	return s.Wallets.UnblockBalance(ctx, walletID, amount, link)
}

// ConfirmBlockedDebit settles a reservation, removing amount from blocked for
// good.
func (s *Service) ConfirmBlockedDebit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error) {
	return s.Wallets.ConfirmBlockedDebit(ctx, walletID, amount, entryType, link)
}

// ListEntries returns the wallet's most recent ledger entries.
func (s *Service) ListEntries(ctx context.Context, walletID string, limit int32) ([]models.LedgerEntry, error) {
	return s.Entries.ListEntriesByWallet(ctx, walletID, limit)
}

// Replay folds a wallet's full entry log into the total balance it implies.
// For a consistent log this equals the wallet's available+blocked total.
func Replay(entries []models.LedgerEntry) models.Cents {
	var total models.Cents
	for i := range entries {
		total += entries[i].Delta()
	}
	return total
}

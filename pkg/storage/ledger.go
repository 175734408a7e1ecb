package storage

import (
	"context"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// LedgerReader defines the interface for reading the transaction log.
type LedgerReader interface {
	// ListEntriesByWallet retrieves the wallet's ledger entries, most recent
	// first, up to limit.
	ListEntriesByWallet(ctx context.Context, walletID string, limit int32) ([]models.LedgerEntry, error)
}

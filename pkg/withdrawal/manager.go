package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/rotafacil/wallet-core/pkg/config"
	"github.com/rotafacil/wallet-core/pkg/gateway"
	"github.com/rotafacil/wallet-core/pkg/ledger"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
)

// sweepLookback bounds how far back the rate-check pass inspects a driver's
// withdrawals. Anything older is terminal or already swept.
const sweepLookback = 48 * time.Hour

// Manager runs driver payouts: reserve funds, call the settlement provider,
// finalize or roll back. The fee is taken out of the requested amount; the
// driver is debited the full amount, the net goes out over PIX and the fee
// lands on the platform wallet at completion.
type Manager struct {
	Ledger      *ledger.Service
	Withdrawals storage.WithdrawalStore
	Gateway     gateway.Client
	Cfg         config.WithdrawalConfig

	PlatformWalletID string

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewManager creates a new withdrawal Manager.
func NewManager(ledgerSvc *ledger.Service, withdrawals storage.WithdrawalStore, gw gateway.Client, cfg config.WithdrawalConfig, platformWalletID string) *Manager {
	return &Manager{
		Ledger:      ledgerSvc,
		Withdrawals: withdrawals,
		Gateway:     gw,
		Cfg:         cfg,

		PlatformWalletID: platformWalletID,

		Now: time.Now,
	}
}

// Request starts a payout for the driver. A nil amount withdraws the whole
// available balance. Funds are blocked before the provider is called; any
// provider rejection releases them again. A provider timeout leaves the
// withdrawal in processing for the reconciler or the stale sweep to resolve,
// since the transfer may still have gone through.
func (m *Manager) Request(ctx context.Context, driverID string, amount *models.Cents, destKey string, destKeyType models.PixKeyType) (*models.Withdrawal, error) {
	if destKey == "" {
		return nil, fmt.Errorf("destination key: %w", storage.ErrSubaccountNotConfigured)
	}

	wallet, err := m.Ledger.GetOrCreateWallet(ctx, models.OwnerDriver, driverID)
	if err != nil {
		return nil, err
	}

	if err := m.rateCheck(ctx, driverID); err != nil {
		return nil, err
	}

	requested := wallet.Available
	if amount != nil {
		requested = *amount
	}
	if requested <= m.Cfg.Fee {
		return nil, fmt.Errorf("amount %s does not cover the %s fee: %w", requested, m.Cfg.Fee, storage.ErrInvalidAmount)
	}
	if requested < m.Cfg.MinAmount {
		return nil, fmt.Errorf("amount %s is below the %s minimum: %w", requested, m.Cfg.MinAmount, storage.ErrInvalidAmount)
	}
	if requested > wallet.Available {
		return nil, fmt.Errorf("available %s, required %s: %w", wallet.Available, requested, storage.ErrInsufficientBalance)
	}

	// The platform wallet must exist before completion tries to credit the fee.
	if _, err := m.Ledger.GetOrCreateWallet(ctx, models.OwnerPlatform, platformOwnerID(m.PlatformWalletID)); err != nil {
		return nil, err
	}

	w := &models.Withdrawal{
		DriverID:    driverID,
		WalletID:    wallet.ID,
		Amount:      requested,
		Fee:         m.Cfg.Fee,
		NetAmount:   requested - m.Cfg.Fee,
		DestKey:     destKey,
		DestKeyType: destKeyType,
	}
	w, err = m.Withdrawals.CreateWithdrawal(ctx, w)
	if err != nil {
		return nil, err
	}

	transfer, err := m.Gateway.CreateTransfer(ctx, w.NetAmount, destKey, destKeyType, w.ID)
	if err != nil {
		if isTimeout(err) {
			// Unknown outcome. The funds stay blocked until a webhook or the
			// stale sweep decides.
			log.Printf("transfer outcome unknown for withdrawal %s: %v", w.ID, err)
			return w, nil
		}
		if failErr := m.Fail(ctx, w.ID, err.Error()); failErr != nil {
			log.Printf("failed to roll back withdrawal %s: %v", w.ID, failErr)
		}
		return nil, fmt.Errorf("transfer rejected for withdrawal %s: %w", w.ID, err)
	}

	w.TransferRef = transfer.TransferRef
	if err := m.Withdrawals.SetWithdrawalTransferRef(ctx, w.ID, transfer.TransferRef); err != nil {
		return nil, err
	}

	if transfer.Status == gateway.TransferAuthorized {
		if err := m.Finalize(ctx, w.ID); err != nil {
			return nil, err
		}
		w.Status = models.WithdrawalCompleted
	}

	return w, nil
}

// Finalize settles a withdrawal whose transfer succeeded: the blocked amount
// leaves the driver wallet for good and the fee credits the platform wallet.
// Already-terminal withdrawals are a no-op.
func (m *Manager) Finalize(ctx context.Context, withdrawalID string) error {
	w, err := m.Withdrawals.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return err
	}

	if err := m.Withdrawals.CompleteWithdrawal(ctx, w, m.PlatformWalletID); err != nil {
		if errors.Is(err, storage.ErrAlreadyProcessed) {
			return nil
		}
		return err
	}
	return nil
}

// Fail releases the blocked amount back to the driver and records the failure
// reason. Already-terminal withdrawals are a no-op.
func (m *Manager) Fail(ctx context.Context, withdrawalID, reason string) error {
	w, err := m.Withdrawals.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return err
	}

	if err := m.Withdrawals.FailWithdrawal(ctx, w, reason); err != nil {
		if errors.Is(err, storage.ErrAlreadyProcessed) {
			return nil
		}
		return err
	}
	return nil
}

// SweepStale fails the driver's processing withdrawals older than the
// staleness window, releasing their blocked funds. A withdrawal whose transfer
// lands after the sweep is resolved by the reconciler finding it already
// failed and logging the mismatch.
func (m *Manager) SweepStale(ctx context.Context, driverID string) error {
	now := m.Now()
	recent, err := m.Withdrawals.ListWithdrawalsByDriverSince(ctx, driverID, now.Add(-sweepLookback))
	if err != nil {
		return err
	}

	var errs []error
	for i := range recent {
		w := &recent[i]
		if w.Status != models.WithdrawalProcessing {
			continue
		}
		if now.Sub(w.CreatedAt) < m.Cfg.StaleThreshold {
			continue
		}
		if err := m.Fail(ctx, w.ID, "abandoned after staleness window"); err != nil {
			errs = append(errs, fmt.Errorf("withdrawal %s: %w", w.ID, err))
		}
	}
	return errors.Join(errs...)
}

// rateCheck enforces the daily completed-withdrawal cap, sweeping stale
// processing rows first so an abandoned attempt does not hold the day's slot.
func (m *Manager) rateCheck(ctx context.Context, driverID string) error {
	if err := m.SweepStale(ctx, driverID); err != nil {
		return err
	}

	now := m.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := m.Withdrawals.ListWithdrawalsByDriverSince(ctx, driverID, startOfDay)
	if err != nil {
		return err
	}

	completed := 0
	for i := range today {
		if today[i].Status == models.WithdrawalCompleted {
			completed++
		}
	}
	if completed >= m.Cfg.DailyCap {
		return fmt.Errorf("%d of %d daily withdrawals already completed: %w", completed, m.Cfg.DailyCap, storage.ErrRateLimitExceeded)
	}
	return nil
}

// isTimeout reports whether the gateway error is a timeout, i.e. the transfer
// outcome is unknown rather than rejected.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// platformOwnerID strips the owner-type prefix from a platform wallet id.
func platformOwnerID(walletID string) string {
	return strings.TrimPrefix(walletID, string(models.OwnerPlatform)+"#")
}

package split

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rotafacil/wallet-core/pkg/commission"
	"github.com/rotafacil/wallet-core/pkg/ledger"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
)

// Delivery carries the priced, assigned delivery the engine splits. Dispatch
// and pricing happen upstream; the engine only moves money.
type Delivery struct {
	DeliveryID  string             `json:"delivery_id"`
	CompanyID   string             `json:"company_id"`
	DriverID    string             `json:"driver_id"`
	PaymentMode models.PaymentMode `json:"payment_mode"`
	TotalAmount models.Cents       `json:"total_amount"`
}

// Guard is the delivery-creation answer for a company.
type Guard struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Engine distributes one delivery's payment three ways: company pays, driver
// earns, platform takes commission. Pre-paid companies settle immediately from
// their wallet; post-paid companies accumulate deferred splits that a closing
// charge settles later.
type Engine struct {
	Ledger     *ledger.Service
	Splits     storage.SplitStore
	Stats      storage.StatsStore
	Commission *commission.Resolver

	PlatformWalletID string
}

// NewEngine creates a new split Engine.
func NewEngine(ledgerSvc *ledger.Service, splits storage.SplitStore, stats storage.StatsStore, resolver *commission.Resolver, platformWalletID string) *Engine {
	return &Engine{
		Ledger:     ledgerSvc,
		Splits:     splits,
		Stats:      stats,
		Commission: resolver,

		PlatformWalletID: platformWalletID,
	}
}

// ProcessDeliverySplit splits the delivery's payment. A delivery that was
// already fully processed is returned unchanged; a delivery whose immediate
// settlement was interrupted resumes from the last completed wallet movement
// rather than re-debiting the company.
func (e *Engine) ProcessDeliverySplit(ctx context.Context, delivery *Delivery) (*models.DeliverySplit, error) {
	split, err := e.Splits.GetSplitByDelivery(ctx, delivery.DeliveryID)
	if err != nil {
		return nil, err
	}
	if split != nil && split.Processed {
		return split, nil
	}

	if split == nil {
		split, err = e.createSplit(ctx, delivery)
		if err != nil {
			return nil, err
		}
	}

	if split.PaymentMode == models.PaymentPostpaid {
		// Deferred: no wallet movement until the closing charge confirms.
		return split, nil
	}

	if err := e.settleImmediate(ctx, split); err != nil {
		return nil, err
	}
	split.Processed = true

	return split, nil
}

// createSplit computes the amounts and persists the split row. The delivery id
// is the idempotency key, so a concurrent call converges on one record; the
// driver's monthly counter moves only for the call that created the row.
func (e *Engine) createSplit(ctx context.Context, delivery *Delivery) (*models.DeliverySplit, error) {
	bp, err := e.Commission.Resolve(ctx, delivery.DriverID)
	if err != nil {
		return nil, err
	}
	driverAmount, commissionAmount := delivery.TotalAmount.SplitCommission(bp)

	now := time.Now()
	split := &models.DeliverySplit{
		DeliveryID:       delivery.DeliveryID,
		CompanyID:        delivery.CompanyID,
		DriverID:         delivery.DriverID,
		PaymentMode:      delivery.PaymentMode,
		TotalAmount:      delivery.TotalAmount,
		DriverAmount:     driverAmount,
		CommissionAmount: commissionAmount,
		CommissionBP:     bp,
		Processed:        false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if delivery.PaymentMode == models.PaymentPostpaid {
		split.ClosingKey = models.ClosingPending
	}

	created, err := e.Splits.CreateSplit(ctx, split)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyProcessed) {
			return created, nil
		}
		return nil, err
	}

	if err := e.Stats.IncrementDeliveryCount(ctx, delivery.DriverID, models.MonthKey(now)); err != nil {
		// The counter only feeds commission tiering; the split must not fail
		// over it.
		log.Printf("failed to increment delivery count for driver %s: %v", delivery.DriverID, err)
	}

	return created, nil
}

// settleImmediate runs the three wallet movements company-debit-first,
// recording each ledger entry id on the split before the next movement. A
// movement whose entry id is already recorded is skipped on resume.
func (e *Engine) settleImmediate(ctx context.Context, split *models.DeliverySplit) error {
	link := models.EntryLink{DeliveryID: split.DeliveryID}

	if _, err := e.Ledger.GetOrCreateWallet(ctx, models.OwnerDriver, split.DriverID); err != nil {
		return err
	}
	if _, err := e.Ledger.GetOrCreateWallet(ctx, models.OwnerPlatform, platformOwnerID(e.PlatformWalletID)); err != nil {
		return err
	}

	companyWalletID := models.WalletID(models.OwnerCompany, split.CompanyID)
	if split.CompanyDebitID == "" {
		_, entry, err := e.Ledger.Debit(ctx, companyWalletID, split.TotalAmount, models.EntryDeliveryDebit, link, false)
		if err != nil {
			return err
		}
		if err := e.Splits.RecordSplitEntry(ctx, split.DeliveryID, storage.SplitFieldCompanyDebit, entry.EntryID); err != nil {
			return err
		}
		split.CompanyDebitID = entry.EntryID
	}

	driverWalletID := models.WalletID(models.OwnerDriver, split.DriverID)
	if split.DriverCreditID == "" {
		_, entry, err := e.Ledger.Credit(ctx, driverWalletID, split.DriverAmount, models.EntryDeliveryCredit, link)
		if err != nil {
			return err
		}
		if err := e.Splits.RecordSplitEntry(ctx, split.DeliveryID, storage.SplitFieldDriverCredit, entry.EntryID); err != nil {
			return err
		}
		split.DriverCreditID = entry.EntryID
	}

	if split.CommissionCreditID == "" && split.CommissionAmount > 0 {
		_, entry, err := e.Ledger.Credit(ctx, e.PlatformWalletID, split.CommissionAmount, models.EntryCommission, link)
		if err != nil {
			return err
		}
		if err := e.Splits.RecordSplitEntry(ctx, split.DeliveryID, storage.SplitFieldCommissionCredit, entry.EntryID); err != nil {
			return err
		}
		split.CommissionCreditID = entry.EntryID
	}

	if err := e.Splits.MarkSplitProcessed(ctx, split.DeliveryID); err != nil && !errors.Is(err, storage.ErrAlreadyProcessed) {
		return err
	}
	return nil
}

// CanCompanyRequestDelivery gates delivery creation on the company's wallet.
// Post-paid companies are always allowed; pre-paid companies need available
// balance covering the estimate.
func (e *Engine) CanCompanyRequestDelivery(ctx context.Context, companyID string, mode models.PaymentMode, estimatedAmount models.Cents) (*Guard, error) {
	if mode == models.PaymentPostpaid {
		return &Guard{Allowed: true}, nil
	}

	wallet, err := e.Ledger.GetOrCreateWallet(ctx, models.OwnerCompany, companyID)
	if err != nil {
		return nil, err
	}
	if wallet.Available < estimatedAmount {
		return &Guard{
			Allowed: false,
			Reason:  fmt.Sprintf("insufficient balance: available %s, required %s", wallet.Available, estimatedAmount),
		}, nil
	}

	return &Guard{Allowed: true}, nil
}

// SettleChargeSplits replays the deferred fan-out for every split attached to
// a confirmed closing charge. Each split settles at most once; replaying a
// confirmed charge is harmless.
func (e *Engine) SettleChargeSplits(ctx context.Context, chargeID string) error {
	splits, err := e.Splits.ListSplitsByCharge(ctx, chargeID)
	if err != nil {
		return err
	}

	if _, err := e.Ledger.GetOrCreateWallet(ctx, models.OwnerPlatform, platformOwnerID(e.PlatformWalletID)); err != nil {
		return err
	}

	var errs []error
	for i := range splits {
		split := &splits[i]
		if split.Processed {
			continue
		}
		if _, err := e.Ledger.GetOrCreateWallet(ctx, models.OwnerDriver, split.DriverID); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := e.Splits.SettleDeferredSplit(ctx, split, e.PlatformWalletID); err != nil {
			if errors.Is(err, storage.ErrAlreadyProcessed) {
				continue
			}
			errs = append(errs, fmt.Errorf("split %s: %w", split.DeliveryID, err))
		}
	}

	return errors.Join(errs...)
}

// platformOwnerID strips the owner-type prefix from a platform wallet id.
func platformOwnerID(walletID string) string {
	return strings.TrimPrefix(walletID, string(models.OwnerPlatform)+"#")
}

package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/scheduler"
	"github.com/rotafacil/wallet-core/pkg/storage"
	"github.com/rotafacil/wallet-core/pkg/withdrawal"
)

// Event kinds delivered by the settlement provider.
const (
	EventPaymentConfirmed = "PAYMENT_CONFIRMED"
	EventPaymentReceived  = "PAYMENT_RECEIVED"
	EventPaymentOverdue   = "PAYMENT_OVERDUE"
	EventPaymentDeleted   = "PAYMENT_DELETED"
	EventPaymentRefunded  = "PAYMENT_REFUNDED"
	EventTransferDone     = "TRANSFER_CONFIRMED"
	EventTransferFailed   = "TRANSFER_FAILED"
)

// Event is the provider's webhook payload.
type Event struct {
	Kind     string           `json:"event"`
	Payment  *PaymentPayload  `json:"payment,omitempty"`
	Transfer *TransferPayload `json:"transfer,omitempty"`
}

// PaymentPayload carries the charge-side fields of an event.
type PaymentPayload struct {
	ID            string       `json:"id"`
	Value         models.Cents `json:"value"`
	NetValue      models.Cents `json:"netValue"`
	Status        string       `json:"status"`
	ConfirmedDate string       `json:"confirmedDate"`
}

// TransferPayload carries the transfer-side fields of an event.
type TransferPayload struct {
	ID         string       `json:"id"`
	Value      models.Cents `json:"value"`
	Status     string       `json:"status"`
	FailReason string       `json:"failReason"`
}

// errUnknownKind marks an event the reconciler has no handler for. The logged
// row is the observable signal; nothing is raised.
var errUnknownKind = errors.New("unknown event kind")

// Reconciler processes asynchronous settlement events. Every inbound payload
// is durably logged before any side effect and the outcome is recorded on the
// log row afterwards, so a misbehaving provider can never lose an event or
// crash processing. Dispatch is safe under at-least-once, out-of-order
// delivery.
type Reconciler struct {
	Events      storage.WebhookStore
	Charges     storage.ChargeStore
	Withdrawals *withdrawal.Manager
	Scheduler   scheduler.Scheduler
}

// NewReconciler creates a new Reconciler.
func NewReconciler(events storage.WebhookStore, charges storage.ChargeStore, withdrawals *withdrawal.Manager, sched scheduler.Scheduler) *Reconciler {
	return &Reconciler{
		Events:      events,
		Charges:     charges,
		Withdrawals: withdrawals,
		Scheduler:   sched,
	}
}

// HandleEvent logs and dispatches one raw webhook payload. Processing failures
// are swallowed into the event row's error message; a non-nil return means the
// payload could not even be logged and the provider should redeliver.
func (r *Reconciler) HandleEvent(ctx context.Context, payload []byte) error {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("malformed webhook payload: %v", err)
	}

	logged, err := r.Events.LogEvent(ctx, &models.WebhookEvent{
		Kind:    event.Kind,
		Payload: string(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to log webhook event: %w", err)
	}

	if dispatchErr := r.dispatch(ctx, &event); dispatchErr != nil {
		log.Printf("event %s (%s) not processed: %v", logged.ID, event.Kind, dispatchErr)
		if markErr := r.Events.MarkEventProcessed(ctx, logged.ID, false, dispatchErr.Error()); markErr != nil {
			log.Printf("failed to mark event %s: %v", logged.ID, markErr)
		}
		return nil
	}

	if markErr := r.Events.MarkEventProcessed(ctx, logged.ID, true, ""); markErr != nil {
		log.Printf("failed to mark event %s: %v", logged.ID, markErr)
	}
	return nil
}

func (r *Reconciler) dispatch(ctx context.Context, event *Event) error {
	switch event.Kind {
	case EventPaymentConfirmed, EventPaymentReceived:
		return r.handlePaymentConfirmed(ctx, event)
	case EventPaymentOverdue:
		return r.transitionCharge(ctx, event, models.ChargeOverdue)
	case EventPaymentDeleted:
		return r.transitionCharge(ctx, event, models.ChargeCancelled)
	case EventPaymentRefunded:
		return r.transitionCharge(ctx, event, models.ChargeRefunded)
	case EventTransferDone:
		return r.handleTransfer(ctx, event, "")
	case EventTransferFailed:
		reason := "transfer failed"
		if event.Transfer != nil && event.Transfer.FailReason != "" {
			reason = event.Transfer.FailReason
		}
		return r.handleTransfer(ctx, event, reason)
	default:
		return fmt.Errorf("%w: %q", errUnknownKind, event.Kind)
	}
}

// handlePaymentConfirmed settles a paid charge. A recharge credits the
// company wallet in the same transaction as the status flip; a closing charge
// flips to confirmed and hands the deferred fan-out to the settlement queue.
// Replays find the charge already confirmed and do nothing.
func (r *Reconciler) handlePaymentConfirmed(ctx context.Context, event *Event) error {
	if event.Payment == nil {
		return errors.New("payment event without payment payload")
	}

	charge, err := r.Charges.GetChargeByProviderRef(ctx, event.Payment.ID)
	if err != nil {
		return err
	}

	switch charge.Type {
	case models.ChargeRecharge:
		if _, _, err := r.Charges.ConfirmRechargeCharge(ctx, charge); err != nil {
			if errors.Is(err, storage.ErrAlreadyProcessed) {
				return nil
			}
			return err
		}
		return nil

	case models.ChargeClosing:
		if err := r.Charges.TransitionCharge(ctx, charge.ID, models.ChargeConfirmed); err != nil && !errors.Is(err, storage.ErrAlreadyProcessed) {
			return err
		}
		// Enqueue the fan-out even on replay; every split settles at most once.
		return r.Scheduler.ScheduleJob(ctx, &scheduler.Job{
			Kind:     scheduler.JobSettleCharge,
			ChargeID: charge.ID,
		})

	default:
		return fmt.Errorf("charge %s has unknown type %q", charge.ID, charge.Type)
	}
}

// transitionCharge moves a charge to a terminal status without touching
// balances. Already-processed credits are deliberately not reversed here.
func (r *Reconciler) transitionCharge(ctx context.Context, event *Event, to models.ChargeStatus) error {
	if event.Payment == nil {
		return errors.New("payment event without payment payload")
	}

	charge, err := r.Charges.GetChargeByProviderRef(ctx, event.Payment.ID)
	if err != nil {
		return err
	}

	if err := r.Charges.TransitionCharge(ctx, charge.ID, to); err != nil && !errors.Is(err, storage.ErrAlreadyProcessed) {
		return err
	}
	return nil
}

// handleTransfer resolves a withdrawal by the provider transfer id. An empty
// reason finalizes it; otherwise it is failed with that reason. Both paths are
// no-ops for already-terminal withdrawals.
func (r *Reconciler) handleTransfer(ctx context.Context, event *Event, failReason string) error {
	if event.Transfer == nil {
		return errors.New("transfer event without transfer payload")
	}

	w, err := r.Withdrawals.Withdrawals.GetWithdrawalByTransferRef(ctx, event.Transfer.ID)
	if err != nil {
		return err
	}

	if failReason == "" {
		return r.Withdrawals.Finalize(ctx, w.ID)
	}
	return r.Withdrawals.Fail(ctx, w.ID, failReason)
}

package models

import (
	"fmt"
	"time"
)

// OwnerType identifies which party a wallet belongs to.
type OwnerType string

const (
	OwnerCompany  OwnerType = "company"
	OwnerDriver   OwnerType = "driver"
	OwnerPlatform OwnerType = "platform"
)

// WalletStatus defines the possible states of a wallet.
type WalletStatus string

const (
	WalletActive    WalletStatus = "active"
	WalletSuspended WalletStatus = "suspended"
)

// PaymentMode is how a company pays for deliveries: up front from its wallet
// balance, or in arrears through a batch closing charge.
type PaymentMode string

const (
	PaymentPrepaid  PaymentMode = "prepaid"
	PaymentPostpaid PaymentMode = "postpaid"
)

// WalletID builds the canonical wallet key for an owner. One wallet exists per
// (ownerType, ownerID) pair.
func WalletID(ownerType OwnerType, ownerID string) string {
	return fmt.Sprintf("%s#%s", ownerType, ownerID)
}

// Wallet represents the internal domain model for a party's balance.
// Available and Blocked are individually non-negative at all times.
type Wallet struct {
	ID        string       `json:"id" dynamodbav:"wallet_id"`
	OwnerID   string       `json:"owner_id" dynamodbav:"owner_id"`
	OwnerType OwnerType    `json:"owner_type" dynamodbav:"owner_type"`
	Available Cents        `json:"available_balance" dynamodbav:"available"`
	Blocked   Cents        `json:"blocked_balance" dynamodbav:"blocked"`
	Status    WalletStatus `json:"status" dynamodbav:"status"`
	Version   int64        `json:"-" dynamodbav:"version"`
	CreatedAt time.Time    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" dynamodbav:"updated_at"`
}

// Total is the sum of available and blocked funds. The ledger replay invariant
// is stated against this value.
func (w *Wallet) Total() Cents {
	return w.Available + w.Blocked
}

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryRecharge       EntryType = "recharge"
	EntryDeliveryDebit  EntryType = "delivery_debit"
	EntryDeliveryCredit EntryType = "delivery_credit"
	EntryCommission     EntryType = "commission"
	EntryWithdrawal     EntryType = "withdrawal"
	EntryWithdrawalFee  EntryType = "withdrawal_fee"
	EntryBalanceBlock   EntryType = "balance_block"
	EntryBalanceUnblock EntryType = "balance_unblock"
)

// EntryDirection is the sign of an entry against the wallet's total funds.
// Block and unblock shuffle funds between available and blocked without
// changing the total, so they are neutral.
type EntryDirection string

const (
	DirectionCredit  EntryDirection = "credit"
	DirectionDebit   EntryDirection = "debit"
	DirectionNeutral EntryDirection = "neutral"
)

// EntryStatus is the state of a ledger entry. Entries are appended already
// completed; the log is immutable.
type EntryStatus string

const EntryCompleted EntryStatus = "completed"

// EntryLink ties a ledger entry back to the business record that caused it.
type EntryLink struct {
	DeliveryID   string `json:"delivery_id,omitempty" dynamodbav:"delivery_id,omitempty"`
	ChargeID     string `json:"charge_id,omitempty" dynamodbav:"charge_id,omitempty"`
	WithdrawalID string `json:"withdrawal_id,omitempty" dynamodbav:"withdrawal_id,omitempty"`
}

// LedgerEntry is one immutable record of a wallet balance mutation. Every
// mutation appends exactly one entry; the log is the audit source of truth.
type LedgerEntry struct {
	EntryID         string            `json:"entry_id" dynamodbav:"entry_id"`
	WalletID        string            `json:"wallet_id" dynamodbav:"wallet_id"`
	Type            EntryType         `json:"type" dynamodbav:"type"`
	Direction       EntryDirection    `json:"direction" dynamodbav:"direction"`
	Status          EntryStatus       `json:"status" dynamodbav:"status"`
	Amount          Cents             `json:"amount" dynamodbav:"amount"`
	PreviousBalance Cents             `json:"previous_balance" dynamodbav:"previous_balance"`
	NewBalance      Cents             `json:"new_balance" dynamodbav:"new_balance"`
	Link            EntryLink         `json:"link,omitempty" dynamodbav:"link,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	ProcessedAt     time.Time         `json:"processed_at" dynamodbav:"processed_at"`
}

// Delta is the signed contribution of the entry to the wallet's total funds.
func (e *LedgerEntry) Delta() Cents {
	switch e.Direction {
	case DirectionCredit:
		return e.Amount
	case DirectionDebit:
		return -e.Amount
	default:
		return 0
	}
}

// ChargeType distinguishes a company recharge from a post-paid batch closing.
type ChargeType string

const (
	ChargeRecharge ChargeType = "recharge"
	ChargeClosing  ChargeType = "closing"
)

// ChargeStatus defines the possible states of a charge.
type ChargeStatus string

const (
	ChargeWaitingPayment ChargeStatus = "waiting_payment"
	ChargeConfirmed      ChargeStatus = "confirmed"
	ChargeOverdue        ChargeStatus = "overdue"
	ChargeCancelled      ChargeStatus = "cancelled"
	ChargeRefunded       ChargeStatus = "refunded"
)

// Charge is an external payment request issued through the settlement
// gateway. Status transitions are driven exclusively by the reconciler.
type Charge struct {
	ID          string       `json:"id" dynamodbav:"charge_id"`
	WalletID    string       `json:"wallet_id" dynamodbav:"wallet_id"`
	Type        ChargeType   `json:"type" dynamodbav:"type"`
	Amount      Cents        `json:"amount" dynamodbav:"amount"`
	ProviderRef string       `json:"provider_ref" dynamodbav:"provider_ref"`
	Status      ChargeStatus `json:"status" dynamodbav:"status"`
	QRCode      string       `json:"qr_code,omitempty" dynamodbav:"qr_code,omitempty"`
	BRCode      string       `json:"br_code,omitempty" dynamodbav:"br_code,omitempty"`
	PaidAt      *time.Time   `json:"paid_at,omitempty" dynamodbav:"paid_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" dynamodbav:"updated_at"`
}

// DeliverySplit records the three-way distribution of one delivery's payment.
// Processed flips false to true exactly once.
type DeliverySplit struct {
	DeliveryID        string      `json:"delivery_id" dynamodbav:"delivery_id"`
	CompanyID         string      `json:"company_id" dynamodbav:"company_id"`
	DriverID          string      `json:"driver_id" dynamodbav:"driver_id"`
	PaymentMode       PaymentMode `json:"payment_mode" dynamodbav:"payment_mode"`
	TotalAmount       Cents       `json:"total_amount" dynamodbav:"total_amount"`
	DriverAmount      Cents       `json:"driver_amount" dynamodbav:"driver_amount"`
	CommissionAmount  Cents       `json:"commission_amount" dynamodbav:"commission_amount"`
	CommissionBP      BasisPoints `json:"commission_bp" dynamodbav:"commission_bp"`
	CompanyDebitID    string      `json:"company_debit_entry_id,omitempty" dynamodbav:"company_debit_entry_id,omitempty"`
	DriverCreditID    string      `json:"driver_credit_entry_id,omitempty" dynamodbav:"driver_credit_entry_id,omitempty"`
	CommissionCreditID string     `json:"commission_credit_entry_id,omitempty" dynamodbav:"commission_credit_entry_id,omitempty"`
	Processed         bool        `json:"processed" dynamodbav:"processed"`
	ChargeID          string      `json:"charge_id,omitempty" dynamodbav:"charge_id,omitempty"`
	CreatedAt         time.Time   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" dynamodbav:"updated_at"`
	// ClosingKey is present only while the split is deferred, unprocessed and
	// not yet attached to a closing charge. It feeds the closing GSI.
	ClosingKey string `json:"-" dynamodbav:"closing_key,omitempty"`
}

// ClosingPending is the GSI partition value for splits awaiting a closing charge.
const ClosingPending = "PENDING_CLOSING"

// WithdrawalStatus defines the possible states of a withdrawal.
type WithdrawalStatus string

const (
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalFailed     WithdrawalStatus = "failed"
)

// PixKeyType is the kind of destination key a transfer is sent to.
type PixKeyType string

const (
	PixKeyCPF    PixKeyType = "cpf"
	PixKeyCNPJ   PixKeyType = "cnpj"
	PixKeyEmail  PixKeyType = "email"
	PixKeyPhone  PixKeyType = "phone"
	PixKeyRandom PixKeyType = "evp"
)

// Withdrawal is one driver payout attempt. Terminal states are completed or
// failed, reached synchronously or through the reconciler.
type Withdrawal struct {
	ID            string           `json:"id" dynamodbav:"withdrawal_id"`
	DriverID      string           `json:"driver_id" dynamodbav:"driver_id"`
	WalletID      string           `json:"wallet_id" dynamodbav:"wallet_id"`
	Amount        Cents            `json:"amount" dynamodbav:"amount"`
	Fee           Cents            `json:"fee" dynamodbav:"fee"`
	NetAmount     Cents            `json:"net_amount" dynamodbav:"net_amount"`
	DestKey       string           `json:"destination_key" dynamodbav:"destination_key"`
	DestKeyType   PixKeyType       `json:"destination_key_type" dynamodbav:"destination_key_type"`
	Status        WithdrawalStatus `json:"status" dynamodbav:"status"`
	TransferRef   string           `json:"transfer_ref,omitempty" dynamodbav:"transfer_ref,omitempty"`
	FailureReason string           `json:"failure_reason,omitempty" dynamodbav:"failure_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" dynamodbav:"updated_at"`
}

// WebhookEvent is the durable log of one inbound gateway event. It is written
// before any side effect and updated afterwards regardless of outcome.
type WebhookEvent struct {
	ID           string    `json:"id" dynamodbav:"event_id"`
	Kind         string    `json:"kind" dynamodbav:"kind"`
	Payload      string    `json:"payload" dynamodbav:"payload"`
	Processed    bool      `json:"processed" dynamodbav:"processed"`
	ErrorMessage string    `json:"error_message,omitempty" dynamodbav:"error_message,omitempty"`
	ReceivedAt   time.Time `json:"received_at" dynamodbav:"received_at"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty" dynamodbav:"processed_at,omitempty"`
}

// CommissionTier is one volume-based percentage bracket. MaxDeliveries == 0
// means the bracket is open ended.
type CommissionTier struct {
	ID            string      `json:"id" dynamodbav:"id"`
	MinDeliveries int64       `json:"min_deliveries" dynamodbav:"min_deliveries"`
	MaxDeliveries int64       `json:"max_deliveries" dynamodbav:"max_deliveries"`
	PercentageBP  BasisPoints `json:"percentage_bp" dynamodbav:"percentage_bp"`
	Active        bool        `json:"active" dynamodbav:"active"`
}

// Contains reports whether the tier bracket covers the given delivery count.
func (t *CommissionTier) Contains(count int64) bool {
	if count < t.MinDeliveries {
		return false
	}
	return t.MaxDeliveries == 0 || count <= t.MaxDeliveries
}

// MonthKey is the trailing-month bucket used for driver delivery counters.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

package gateway

import (
	"context"
	"errors"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// ErrGateway wraps any network failure or non-2xx response from the
// settlement provider.
var ErrGateway = errors.New("settlement gateway error")

// TransferStatus is the provider's synchronous answer to a transfer request.
type TransferStatus string

const (
	TransferAuthorized TransferStatus = "authorized"
	TransferPending    TransferStatus = "pending"
)

// ChargeResult is the provider's answer to a charge creation.
type ChargeResult struct {
	ChargeRef string `json:"id"`
	QRCode    string `json:"encodedImage"`
	BRCode    string `json:"payload"`
}

// TransferResult is the provider's answer to a PIX transfer request. A
// pending status means the outcome arrives later through a webhook.
type TransferResult struct {
	TransferRef string         `json:"id"`
	Status      TransferStatus `json:"status"`
}

// Receipt acknowledges a subaccount operation.
type Receipt struct {
	ReceiptRef string `json:"id"`
}

// Client is the abstract settlement provider: charge creation, PIX transfers
// and subaccount queries. The core consumes this interface only; provider
// errors wrap ErrGateway and a timeout means unknown outcome, never failure.
type Client interface {
	// CreateCharge asks the provider for a new PIX charge.
	CreateCharge(ctx context.Context, value models.Cents, reference string) (*ChargeResult, error)

	// CreateTransfer sends a PIX transfer to the destination key.
	CreateTransfer(ctx context.Context, value models.Cents, destKey string, destKeyType models.PixKeyType, reference string) (*TransferResult, error)

	// GetSubaccountBalance queries the provider-side balance of a subaccount.
	GetSubaccountBalance(ctx context.Context, pixKey string) (models.Cents, error)

	// DebitSubaccount charges a fee directly against a subaccount.
	DebitSubaccount(ctx context.Context, pixKey string, value models.Cents, description string) (*Receipt, error)

	// TransferBetweenSubaccounts moves funds between two provider-side
	// subaccounts.
	TransferBetweenSubaccounts(ctx context.Context, fromKey, toKey string, value models.Cents, reference string) (*Receipt, error)
}

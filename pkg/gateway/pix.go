package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rotafacil/wallet-core/pkg/config"
	"github.com/rotafacil/wallet-core/pkg/models"
)

// PixClient implements Client against the provider's REST API. It is a thin
// transport binding; every business decision stays in the core.
type PixClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
}

// NewPixClient creates a new PixClient from the gateway configuration.
func NewPixClient(cfg config.GatewayConfig) *PixClient {
	return &PixClient{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
	}
}

// Make sure we conform to the interface
var _ Client = (*PixClient)(nil)

// CreateCharge asks the provider for a new PIX charge.
func (c *PixClient) CreateCharge(ctx context.Context, value models.Cents, reference string) (*ChargeResult, error) {
	body := map[string]any{
		"value":             value,
		"externalReference": reference,
		"billingType":       "PIX",
	}
	var result ChargeResult
	if err := c.do(ctx, http.MethodPost, "/payments", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateTransfer sends a PIX transfer to the destination key.
func (c *PixClient) CreateTransfer(ctx context.Context, value models.Cents, destKey string, destKeyType models.PixKeyType, reference string) (*TransferResult, error) {
	body := map[string]any{
		"value":             value,
		"pixAddressKey":     destKey,
		"pixAddressKeyType": destKeyType,
		"externalReference": reference,
	}
	var result TransferResult
	if err := c.do(ctx, http.MethodPost, "/transfers", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSubaccountBalance queries the provider-side balance of a subaccount.
func (c *PixClient) GetSubaccountBalance(ctx context.Context, pixKey string) (models.Cents, error) {
	var result struct {
		Balance models.Cents `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/subaccounts/%s/balance", pixKey), nil, &result); err != nil {
		return 0, err
	}
	return result.Balance, nil
}

// DebitSubaccount charges a fee directly against a subaccount.
func (c *PixClient) DebitSubaccount(ctx context.Context, pixKey string, value models.Cents, description string) (*Receipt, error) {
	body := map[string]any{
		"value":       value,
		"description": description,
	}
	var result Receipt
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/subaccounts/%s/debits", pixKey), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TransferBetweenSubaccounts moves funds between two provider-side
// subaccounts.
func (c *PixClient) TransferBetweenSubaccounts(ctx context.Context, fromKey, toKey string, value models.Cents, reference string) (*Receipt, error) {
	body := map[string]any{
		"fromKey":           fromKey,
		"toKey":             toKey,
		"value":             value,
		"externalReference": reference,
	}
	var result Receipt
	if err := c.do(ctx, http.MethodPost, "/subaccounts/transfers", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *PixClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal gateway request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrGateway, method, path, resp.StatusCode, string(payload))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}

	return nil
}

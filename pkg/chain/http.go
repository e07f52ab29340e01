package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GatewayClient talks to the contract gateway service that holds the
// signing flow. Failures are wrapped in ErrLedgerFailure.
type GatewayClient struct {
	BaseURL      string
	ServiceToken string
	HTTPClient   *http.Client
}

// NewGatewayClient creates a GatewayClient with a sane default timeout.
func NewGatewayClient(baseURL, serviceToken string) *GatewayClient {
	return &GatewayClient{
		BaseURL:      baseURL,
		ServiceToken: serviceToken,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Make sure we conform to the interface
var _ Client = (*GatewayClient)(nil)

// CreateBattle registers a battle on the ledger via the gateway.
func (c *GatewayClient) CreateBattle(ctx context.Context, params CreateBattleParams) (*CreateBattleResult, error) {
	var result CreateBattleResult
	if err := c.post(ctx, "/v1/battles", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExecuteTurn advances a battle on the ledger via the gateway.
func (c *GatewayClient) ExecuteTurn(ctx context.Context, externalBattleID string) (*ExecuteTurnResult, error) {
	var result ExecuteTurnResult
	path := fmt.Sprintf("/v1/battles/%s/turns", externalBattleID)
	if err := c.post(ctx, path, struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *GatewayClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ServiceToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: gateway returned status %d", ErrLedgerFailure, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode gateway response: %v", ErrLedgerFailure, err)
	}

	return nil
}

package nft

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nftarena/battle-coordinator/pkg/models"
)

// StatServiceClient fetches stat blocks from the NFT metadata service.
type StatServiceClient struct {
	BaseURL      string
	ServiceToken string
	HTTPClient   *http.Client
}

// NewStatServiceClient creates a StatServiceClient.
func NewStatServiceClient(baseURL, serviceToken string) *StatServiceClient {
	return &StatServiceClient{
		BaseURL:      baseURL,
		ServiceToken: serviceToken,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Make sure we conform to the interface
var _ StatProvider = (*StatServiceClient)(nil)

// GetStats retrieves the stat block for a (collection, item) pair.
func (c *StatServiceClient) GetStats(ctx context.Context, collection, item string) (*models.StatBlock, error) {
	endpoint := fmt.Sprintf("%s/v1/collections/%s/items/%s/stats",
		c.BaseURL, url.PathEscape(collection), url.PathEscape(item))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.ServiceToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: unknown nft %s/%s", ErrStatsUnavailable, collection, item)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: stat service returned status %d", ErrStatsUnavailable, resp.StatusCode)
	}

	var stats models.StatBlock
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode stat block: %w", err)
	}

	return &stats, nil
}

// Package inventory is the HTTP client for the inventory service's
// check-and-reserve endpoint.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
)

// Both the connection and the full response share a fixed 5 second budget.
const (
	connectTimeout  = 5 * time.Second
	responseTimeout = 5 * time.Second
)

var _ ports.StockChecker = (*Client)(nil)

// Client calls GET /api/inventory/check on the inventory service.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds the stock query client. When httpc is nil a default
// client with bounded connect and response timeouts is used.
func NewClient(baseURL string, httpc *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("inventory base URL is required")
	}
	if httpc == nil {
		httpc = &http.Client{
			Timeout: responseTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		}
	}
	return &Client{baseURL: baseURL, httpc: httpc}, nil
}

// CheckAndReserve asks the inventory service to reserve quantity units of
// skuCode. A transport error, timeout, or non-200 status wraps
// ErrStockCheckUnavailable so the caller can tell an outage apart from a
// deterministic denial. There is no retry.
func (c *Client) CheckAndReserve(ctx context.Context, skuCode string, quantity int) (bool, error) {
	if c == nil || c.httpc == nil {
		return false, errors.New("inventory client not configured")
	}
	query := url.Values{}
	query.Set("skuCode", skuCode)
	query.Set("quantity", strconv.Itoa(quantity))
	endpoint := c.baseURL + "/api/inventory/check?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build inventory request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ports.ErrStockCheckUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: unexpected status %s", ports.ErrStockCheckUnavailable, resp.Status)
	}
	var inStock bool
	if err := json.NewDecoder(resp.Body).Decode(&inStock); err != nil {
		return false, fmt.Errorf("%w: decode response: %v", ports.ErrStockCheckUnavailable, err)
	}
	return inStock, nil
}

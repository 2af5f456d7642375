package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com"

// Client talks HTTP to the gateway. All endpoints use basic auth with the
// key id and secret.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

func newClient(cfg *Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL:   base,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type orderPayload struct {
	Amount   json.Number       `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) createOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	payload := orderPayload{
		Amount:   json.Number(req.Amount.String()),
		Currency: currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	}

	var order Order
	if err := c.post(ctx, "/v1/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("razorpay: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("razorpay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay: %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("razorpay: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Description != "" {
			return fmt.Errorf("razorpay: %s: %s (%s)", path, apiErr.Error.Description, apiErr.Error.Code)
		}
		return fmt.Errorf("razorpay: %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("razorpay: decode response: %w", err)
	}
	return nil
}

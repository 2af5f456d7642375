// Package razorpay is a minimal client for the Razorpay Orders API: order
// creation, payment lookup and checkout signature verification. Protocol
// details beyond what the booking flow needs are out of scope.
package razorpay

import (
	"context"
	"crypto/hmac"

	"github.com/shopspring/decimal"
)

type Config struct {
	BaseURL   string `json:"baseUrl" mapstructure:"base_url"`
	KeyID     string `json:"keyId" mapstructure:"key_id"`
	KeySecret string `json:"keySecret" mapstructure:"key_secret"`
}

type Gateway struct {
	keySecret string
	client    *Client
}

// OrderRequest describes a new gateway order. Amount is in the smallest
// currency unit (paise for INR), as the gateway requires.
type OrderRequest struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is the gateway's order record.
type Order struct {
	ID       string            `json:"id"`
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes"`
}

func New(cfg *Config) *Gateway {
	return &Gateway{
		keySecret: cfg.KeySecret,
		client:    newClient(cfg),
	}
}

func (g *Gateway) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	return g.client.createOrder(ctx, req)
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256(orderID|paymentID) keyed with the API secret.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	expected := Hmac256([]byte(orderID+"|"+paymentID), []byte(g.keySecret))
	return hmac.Equal([]byte(signature), []byte(expected))
}

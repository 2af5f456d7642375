// Package otpless sends and verifies one time passwords through the OTPLESS
// HTTP API. Calls go through a circuit breaker so a flapping provider does
// not stall every login attempt.
package otpless

import (
	"context"
	"fmt"

	"turf-booking/utils"
)

type Config struct {
	BaseURL      string `json:"baseUrl" mapstructure:"base_url"`
	ClientID     string `json:"clientId" mapstructure:"client_id"`
	ClientSecret string `json:"clientSecret" mapstructure:"client_secret"`

	// Channel is the delivery channel (SMS or WHATSAPP), OTPLength the
	// number of digits and Expiry the validity window in seconds.
	Channel   string `json:"channel" mapstructure:"channel"`
	OTPLength int    `json:"otpLength" mapstructure:"otp_length"`
	Expiry    int    `json:"expiry" mapstructure:"expiry"`
}

type Gateway struct {
	cfg     *Config
	client  *Client
	breaker *utils.CircuitBreaker
}

func New(cfg *Config) *Gateway {
	return &Gateway{
		cfg:     cfg,
		client:  newClient(cfg),
		breaker: utils.NewCircuitBreaker("otpless"),
	}
}

// Send delivers a fresh OTP to mobileNo and returns the provider order id
// that later verification must quote.
func (g *Gateway) Send(ctx context.Context, mobileNo string) (string, error) {
	result, err := g.breaker.Execute(ctx, func() (interface{}, error) {
		return g.client.send(ctx, mobileNo)
	})
	if err != nil {
		return "", fmt.Errorf("otp send: %w", err)
	}
	return result.(string), nil
}

// Resend reissues the OTP for an existing order.
func (g *Gateway) Resend(ctx context.Context, orderID string) (string, error) {
	result, err := g.breaker.Execute(ctx, func() (interface{}, error) {
		return g.client.resend(ctx, orderID)
	})
	if err != nil {
		return "", fmt.Errorf("otp resend: %w", err)
	}
	return result.(string), nil
}

// Verify checks otp against the order. A false return with nil error means
// the provider rejected the code.
func (g *Gateway) Verify(ctx context.Context, mobileNo, orderID, otp string) (bool, error) {
	result, err := g.breaker.Execute(ctx, func() (interface{}, error) {
		return g.client.verify(ctx, mobileNo, orderID, otp)
	})
	if err != nil {
		return false, fmt.Errorf("otp verify: %w", err)
	}
	return result.(bool), nil
}

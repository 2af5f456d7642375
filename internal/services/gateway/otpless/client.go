package otpless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://auth.otpless.app"

type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	channel      string
	otpLength    int
	expiry       int
	http         *http.Client
}

func newClient(cfg *Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	channel := cfg.Channel
	if channel == "" {
		channel = "SMS"
	}
	otpLength := cfg.OTPLength
	if otpLength == 0 {
		otpLength = 6
	}
	expiry := cfg.Expiry
	if expiry == 0 {
		expiry = 300
	}
	return &Client{
		baseURL:      base,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		channel:      channel,
		otpLength:    otpLength,
		expiry:       expiry,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendPayload struct {
	PhoneNumber string `json:"phoneNumber"`
	Channel     string `json:"channel"`
	OTPLength   int    `json:"otpLength"`
	Expiry      int    `json:"expiry"`
}

type resendPayload struct {
	OrderID string `json:"orderId"`
}

type verifyPayload struct {
	PhoneNumber string `json:"phoneNumber"`
	OrderID     string `json:"orderId"`
	OTP         string `json:"otp"`
}

type orderReply struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

type verifyReply struct {
	IsOTPVerified bool   `json:"isOTPVerified"`
	Reason        string `json:"reason"`
}

func (c *Client) send(ctx context.Context, mobileNo string) (string, error) {
	payload := sendPayload{
		PhoneNumber: mobileNo,
		Channel:     c.channel,
		OTPLength:   c.otpLength,
		Expiry:      c.expiry,
	}
	var reply orderReply
	if err := c.post(ctx, "/auth/otp/v1/send", payload, &reply); err != nil {
		return "", err
	}
	if reply.OrderID == "" {
		return "", fmt.Errorf("otpless: send returned no order id")
	}
	return reply.OrderID, nil
}

func (c *Client) resend(ctx context.Context, orderID string) (string, error) {
	var reply orderReply
	if err := c.post(ctx, "/auth/otp/v1/resend", resendPayload{OrderID: orderID}, &reply); err != nil {
		return "", err
	}
	if reply.OrderID == "" {
		// Some deployments reuse the original order on resend.
		return orderID, nil
	}
	return reply.OrderID, nil
}

func (c *Client) verify(ctx context.Context, mobileNo, orderID, otp string) (bool, error) {
	payload := verifyPayload{
		PhoneNumber: mobileNo,
		OrderID:     orderID,
		OTP:         otp,
	}
	var reply verifyReply
	if err := c.post(ctx, "/auth/otp/v1/verify", payload, &reply); err != nil {
		return false, err
	}
	return reply.IsOTPVerified, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("otpless: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("otpless: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("clientId", c.clientID)
	req.Header.Set("clientSecret", c.clientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("otpless: %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("otpless: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var reply orderReply
		if json.Unmarshal(data, &reply) == nil && reply.Message != "" {
			return fmt.Errorf("otpless: %s: %s", path, reply.Message)
		}
		return fmt.Errorf("otpless: %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("otpless: decode response: %w", err)
	}
	return nil
}

package emailclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIKeyHeader carries the shared secret expected by the email service.
const APIKeyHeader = "X-API-Key"

// Request is the body accepted by POST /send-email.
type Request struct {
	ReceiverEmail string `json:"receiver_email" validate:"required,email"`
	Subject       string `json:"subject" validate:"required"`
	Body          string `json:"body" validate:"required"`
}

// Client calls the email service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: &http.Client{Timeout: timeout}}
}

func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(Request{ReceiverEmail: to, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send-email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(APIKeyHeader, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email service returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

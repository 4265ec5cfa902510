package authclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-api-signup/internal/domain"
)

// Paths of the registration service operations the gateway forwards to.
const (
	PathSignup          = "/api/signup"
	PathLoginByEmail    = "/api/login-by-email"
	PathLoginByPhone    = "/api/login-by-phonenumber"
	maxResponseBodySize = 1 << 20
)

// Response is a downstream reply relayed as-is by the gateway.
type Response struct {
	Status int
	Body   []byte
}

type clientIPKey struct{}

// WithClientIP returns a context whose forwarded requests carry ip in
// X-Forwarded-For.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// Client forwards JSON payloads to the registration service.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Forward POSTs body to path and returns the downstream status and body.
// Connection failures and timeouts are reported as domain.ErrUnavailable.
func (c *Client) Forward(ctx context.Context, path string, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if ip, _ := ctx.Value(clientIPKey{}).(string); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %v: %w", path, err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %v: %w", path, err, domain.ErrUnavailable)
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

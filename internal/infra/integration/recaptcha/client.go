// Package recaptcha verifies bot-mitigation tokens against the Google
// siteverify endpoint.
package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"

const requestTimeout = 10 * time.Second

// Result is the unified verification response. Score is nil when the
// provider returned none (v2 keys).
type Result struct {
	Success    bool     `json:"success"`
	Action     string   `json:"action"`
	Score      *float64 `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

type Client struct {
	secret     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(secret string) *Client {
	return &Client{
		secret:     secret,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NewClientWithEndpoint exists for tests against a local verifier.
func NewClientWithEndpoint(secret, endpoint string) *Client {
	c := NewClient(secret)
	c.endpoint = endpoint
	return c
}

// Verify checks a client-supplied token. remoteIP is optional and forwarded
// best-effort. A transport or decode error means the verdict is inconclusive,
// not negative; the caller decides the fail-open/fail-closed policy.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (Result, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("recaptcha: verify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("recaptcha: verify: unexpected status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("recaptcha: decode response: %w", err)
	}

	return result, nil
}

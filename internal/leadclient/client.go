// Package leadclient is the form-side counterpart of the submission
// endpoint: pre-validation, lazy token acquisition and a single guarded
// submit with exactly three user-visible outcomes.
package leadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/i18n"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/usecase"
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeValidationError
	OutcomeFailed
)

// ErrSubmitInFlight mirrors the disabled submit button: one request at a
// time, a double-click never produces a duplicate concurrent submission.
var ErrSubmitInFlight = errors.New("leadclient: submission already in flight")

// Result is the single UI verdict for one submit attempt.
type Result struct {
	Outcome     Outcome
	Message     string
	FieldErrors []usecase.ValidationError
}

const (
	defaultAction = "contact"
	// tokenAcquireWait bounds how long a submit waits for the mitigation
	// library to become ready before proceeding without a token.
	tokenAcquireWait = 5 * time.Second
	submitTimeout    = 15 * time.Second
)

type Client struct {
	endpoint   string
	siteKey    string
	tokens     *ProviderHandle
	locale     language.Tag
	httpClient *http.Client

	inFlight atomic.Bool
}

// NewClient builds a form client. tokens may be nil when bot mitigation is
// disabled entirely.
func NewClient(endpoint, siteKey string, tokens *ProviderHandle, locale language.Tag) *Client {
	return &Client{
		endpoint:   endpoint,
		siteKey:    siteKey,
		tokens:     tokens,
		locale:     locale,
		httpClient: &http.Client{Timeout: submitTimeout},
	}
}

// Validate runs the same rules the server applies, so the form can report
// the failing field before any network traffic.
func (c *Client) Validate(input usecase.SubmitLeadInput) []usecase.ValidationError {
	return usecase.ValidateLeadInput(input)
}

// Submit validates, lazily acquires a token and performs exactly one POST.
// It returns ErrSubmitInFlight while a previous call is still running.
func (c *Client) Submit(ctx context.Context, input usecase.SubmitLeadInput) (Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	if errs := c.Validate(input); len(errs) > 0 {
		key := i18n.KeyRequiredFields
		if len(errs) == 1 && errs[0].Field == "agree" {
			key = i18n.KeyAgreeRequired
		}
		return Result{
			Outcome:     OutcomeValidationError,
			Message:     i18n.T(c.locale, key),
			FieldErrors: errs,
		}, nil
	}

	input.RecaptchaToken = c.acquireToken(ctx)

	return c.post(ctx, input)
}

// acquireToken is invoked only when actually about to submit, never
// preemptively. Any failure degrades to a tokenless submission; the server
// side owns the blocking policy.
func (c *Client) acquireToken(ctx context.Context) string {
	if c.tokens == nil || c.siteKey == "" {
		return ""
	}

	waitCtx, cancel := context.WithTimeout(ctx, tokenAcquireWait)
	defer cancel()

	provider, err := c.tokens.Await(waitCtx)
	if err != nil || provider == nil {
		return ""
	}

	token, err := provider.Execute(ctx, c.siteKey, defaultAction)
	if err != nil {
		return ""
	}
	return token
}

func (c *Client) post(ctx context.Context, input usecase.SubmitLeadInput) (Result, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return c.failed(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return c.failed(), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.failed(), nil
	}
	defer resp.Body.Close()

	var out usecase.SubmitLeadOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return c.failed(), nil
	}

	switch {
	case resp.StatusCode == http.StatusOK && out.OK:
		return Result{Outcome: OutcomeSuccess}, nil
	case resp.StatusCode == http.StatusBadRequest:
		msg := out.Message
		if msg == "" {
			msg = i18n.T(c.locale, i18n.KeyInvalidRequest)
		}
		return Result{Outcome: OutcomeValidationError, Message: msg}, nil
	default:
		// Never leak internals; the user gets a generic retryable message.
		return c.failed(), nil
	}
}

func (c *Client) failed() Result {
	return Result{
		Outcome: OutcomeFailed,
		Message: i18n.T(c.locale, i18n.KeyServerError),
	}
}

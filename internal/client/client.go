// Package client submits contact form messages to the delivery endpoint and
// tracks the form state shown to the person filling it in.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"portfolio-contact-backend/internal/domain"
)

// ErrSubmitInProgress is returned when Submit is called while a previous
// call is still waiting on the endpoint.
var ErrSubmitInProgress = errors.New("client: submission already in progress")

const (
	defaultTimeout  = 15 * time.Second
	maxResponseBody = 64 << 10
)

// Client sends submissions to one delivery endpoint. At most one request is
// in flight at a time.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *slog.Logger
	sending    atomic.Bool
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each call to the endpoint
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sending reports whether a request is currently in flight
func (c *Client) Sending() bool {
	return c.sending.Load()
}

// Submit validates fields and, if they pass, posts them to the endpoint.
// Invalid input returns a ValidationRejected result without any network I/O.
// A call made while another is in flight returns ErrSubmitInProgress.
func (c *Client) Submit(ctx context.Context, fields domain.ContactRequest) (domain.DispatchResult, error) {
	submission, err := domain.ValidateContact(fields)
	if err != nil {
		return domain.ResultFromError(err), nil
	}

	if !c.sending.CompareAndSwap(false, true) {
		return domain.DispatchResult{}, ErrSubmitInProgress
	}
	defer c.sending.Store(false)

	if err := c.post(ctx, submission); err != nil {
		c.log.DebugContext(ctx, "Contact submission failed", "error", err)
		return domain.DispatchResult{Outcome: domain.OutcomeTransportFailed, Detail: err.Error()}, nil
	}
	return domain.DispatchResult{Outcome: domain.OutcomeDelivered}, nil
}

type endpointResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) post(ctx context.Context, submission domain.ContactRequest) error {
	payload, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contact endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var body endpointResponse
	decodeErr := json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && body.Error != "" {
			return fmt.Errorf("contact endpoint returned %d: %s", resp.StatusCode, body.Error)
		}
		return fmt.Errorf("contact endpoint returned %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("malformed response: %w", decodeErr)
	}
	if !body.Success {
		detail := strings.TrimSpace(body.Error)
		if detail == "" {
			detail = "endpoint did not confirm delivery"
		}
		return errors.New(detail)
	}
	return nil
}

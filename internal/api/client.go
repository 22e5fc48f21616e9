package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/asdclub/club-console/internal/ctxutil"
	"github.com/asdclub/club-console/internal/metrics"
)

// fallbackMessage matches the generic error the web client shows when the
// response body carries no detail.
const fallbackMessage = "Errore"

// Client talks to the club backend. Every call re-fetches from the server;
// there is no caching and no retry here.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithSessionToken sets the session cookie the backend uses to infer the
// viewer's identity (self-service attendance, role checks).
func WithSessionToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping probes backend reachability.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	ctx = ctxutil.WithOp(ctx, op)
	ctx, cancel := ctxutil.WithAPITimeout(ctx)
	defer cancel()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		rd = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.token})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &Error{Op: op, Message: err.Error()}
		metrics.ObserveAPI(op, time.Since(start), apiErr)
		return apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		apiErr := &Error{Op: op, Status: resp.StatusCode, Message: messageFrom(raw)}
		metrics.ObserveAPI(op, time.Since(start), apiErr)
		return apiErr
	}
	metrics.ObserveAPI(op, time.Since(start), nil)

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

// statusResult is the envelope of the mutating activity endpoints: 2xx with
// success=false carries a business-rule rejection.
type statusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) post(ctx context.Context, op, path string, body any) error {
	var env statusResult
	if err := c.do(ctx, op, http.MethodPost, path, nil, body, &env); err != nil {
		return err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fallbackMessage
		}
		return &Error{Op: op, Status: http.StatusOK, Message: msg}
	}
	return nil
}

func messageFrom(raw []byte) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fallbackMessage
}

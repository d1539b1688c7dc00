// Package bragboard provides a client for the Bragboard dashboard REST API.
package bragboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// maxErrorBody caps how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is a Bragboard API client. The bearer credential comes from the
// token source supplied by the caller; the client never refreshes it.
type Client struct {
	tokens     oauth2.TokenSource
	baseURL    string
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewClient creates a new Bragboard API client authenticating with tokens.
func NewClient(tokens oauth2.TokenSource, opts ...ClientOption) *Client {
	c := &Client{
		tokens:     tokens,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the API root, used to resolve relative image paths.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one API call.
type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
	idempotent  bool // attach an Idempotency-Key
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(data), nil
}

// do performs the request and returns the body of a 2xx response. Every
// failure is returned as an *apperr.Error.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, apperr.Wrap(r.op, fmt.Errorf("failed to create request: %w", err))
	}

	if c.tokens == nil {
		return nil, apperr.New(apperr.ErrAuth, r.op, "no session")
	}
	token, err := c.tokens.Token()
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.ErrAuth, Op: r.op, Detail: "no usable session", Err: err}
	}
	token.SetAuthHeader(req)

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.idempotent {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	log := c.logger.With(
		zap.String("op", r.op),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, apperr.Wrap(r.op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := c.handleAPIError(r.op, resp.StatusCode, body)
		log.Info("request rejected", zap.Int("status", resp.StatusCode), zap.Error(apiErr))
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(r.op, fmt.Errorf("failed to read response: %w", err))
	}
	log.Debug("request done", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))

	return body, nil
}

// handleAPIError maps an error status to a typed failure, keeping the
// server's "detail" message when it sends one.
func (c *Client) handleAPIError(op string, statusCode int, body []byte) error {
	detail := errorDetail(body)

	var kind error
	switch statusCode {
	case http.StatusUnauthorized:
		kind = apperr.ErrAuth
		if detail == "" {
			detail = "Bragboard API authentication failed - please log in again"
		}
	case http.StatusForbidden:
		kind = apperr.ErrAuth
		if detail == "" {
			detail = "Bragboard API access denied - your account cannot do this"
		}
	case http.StatusNotFound:
		kind = apperr.ErrNotFound
		if detail == "" {
			detail = "not found - it may have been deleted"
		}
	case http.StatusConflict:
		kind = apperr.ErrConflict
		if detail == "" {
			detail = "conflicts with the current state on the server"
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = apperr.ErrValidation
		if detail == "" {
			detail = "the server rejected the request"
		}
	case http.StatusTooManyRequests:
		kind = apperr.ErrNetwork
		detail = "Bragboard API rate limit exceeded - please try again later"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		kind = apperr.ErrNetwork
		detail = "Bragboard API server error - please try again later"
	default:
		kind = apperr.ErrNetwork
		detail = fmt.Sprintf("Bragboard API error (status %d) - please try again", statusCode)
	}

	return &apperr.Error{Kind: kind, Op: op, Detail: detail, Status: statusCode}
}

// errorDetail extracts FastAPI's {"detail": ...}; validation errors send a list.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// parseErr converts a decoding failure into a typed error for op.
func parseErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var typed *apperr.Error
	if errors.As(err, &typed) {
		return err
	}
	return &apperr.Error{Kind: apperr.ErrNetwork, Op: op, Detail: "unexpected response", Err: err}
}

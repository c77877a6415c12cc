// Package backend is the single chokepoint for calls to the remote
// styleDecor REST API. It attaches the caller's bearer token, enforces the
// request timeout, and applies the global 401 policy: any unauthorized
// response invalidates the session through a hook the session store
// registers. The adapter itself performs no navigation.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
	"github.com/styledecor/styledecor-web/internal/metrics"
)

// DefaultTimeout bounds every backend request. A request that does not
// complete within it fails with apperrors.ErrBackendTimeout.
const DefaultTimeout = 10 * time.Second

const maxResponseBytes = 1 << 20

// UnauthorizedHook is invoked whenever an authenticated request comes back
// 401. It receives the rejected bearer token.
type UnauthorizedHook func(token string)

type Client struct {
	baseURL        string
	httpClient     *http.Client
	onUnauthorized UnauthorizedHook
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUnauthorizedHook registers the 401 subscriber. At most one hook is
// supported; the session store owns it.
func WithUnauthorizedHook(hook UnauthorizedHook) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetUnauthorizedHook installs the 401 subscriber after construction. The
// session store needs the client to exist before it can subscribe.
func (c *Client) SetUnauthorizedHook(hook UnauthorizedHook) {
	c.onUnauthorized = hook
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path, token string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) putJSON(ctx context.Context, path, token string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, token, body, out)
}

func (c *Client) patchJSON(ctx context.Context, path, token string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, token, body, out)
}

func (c *Client) deleteJSON(ctx context.Context, path, token string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, out)
}

// doJSON performs one backend round trip. There is no retry or backoff: a
// failed call fails immediately and the caller decides what to do.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.doJSON] encode request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "[Client.doJSON] build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestSeconds.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, "error").Inc()
		if isTimeout(err) {
			return apperrors.Wrapf(apperrors.ErrBackendTimeout, "%s %s", method, path)
		}
		return fmt.Errorf("%s %s: %w: %w", method, path, apperrors.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.BackendRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrapf(err, "[Client.doJSON] read %s %s response", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(method, path, token, resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], respBody...)
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "[Client.doJSON] parse %s %s response", method, path)
	}
	return nil
}

func (c *Client) statusError(method, path, token string, status int, body []byte) error {
	msg := backendMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized:
		if token != "" {
			// Session-expired policy: the credential is dead everywhere,
			// not just for this call.
			log.Warn().Str("path", path).Msg("backend returned 401, invalidating session")
			metrics.SessionsExpiredTotal.Inc()
			if c.onUnauthorized != nil {
				c.onUnauthorized(token)
			}
			return apperrors.Wrapf(apperrors.ErrSessionExpired, "%s %s", method, path)
		}
		// Unauthenticated call rejected: a credential problem, not a
		// session to tear down.
		return fmt.Errorf("%s %s: %s: %w", method, path, msg, apperrors.ErrInvalidCredentials)
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %s: %w", method, path, msg, apperrors.ErrNotFound)
	default:
		return fmt.Errorf("%s %s: backend error (%d): %s", method, path, status, msg)
	}
}

// backendMessage pulls a display message out of an error body, tolerating
// both {"message": ...} and {"error": ...} shapes.
func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}

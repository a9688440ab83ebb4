// Package api is the single chokepoint for every HTTP call karat makes
// to the CRM backend. It hides the base URL, bearer auth, the backend's
// two response conventions, and file-download handling behind one
// request path so pages never touch net/http directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"karat/internal/logging"
)

// DefaultBaseURL is used when neither config nor environment provide one.
const DefaultBaseURL = "http://localhost:8000/api"

// SessionProvider supplies the bearer token and the single authority
// for discarding it. Constructed once at startup and shared by
// reference; the facade reads it on every request and clears it
// centrally on a 401.
type SessionProvider interface {
	Token() string
	Clear() error
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Session SessionProvider

	// OnUnauthorized fires after a 401 has cleared the session. The TUI
	// uses it to drop to the login view; CLI commands leave it nil.
	OnUnauthorized func()

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns sensible defaults for the given backend.
func DefaultConfig(baseURL string) Config {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// Client is the API facade. Safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        SessionProvider
	onUnauthorized func()

	// Identical in-flight GETs are coalesced; rapid filter toggling in
	// the TUI otherwise fires the same request several times over.
	flights singleflight.Group
}

// New creates a Client from config.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     httpClient,
		session:        cfg.Session,
		onUnauthorized: cfg.OnUnauthorized,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// get issues a GET, coalescing concurrent duplicates of the same URL.
// The shared flight runs detached from any one caller's context: a page
// cancelling its superseded fetch must not fail a newer request that
// coalesced onto the same URL. request applies the transport timeout as
// the flight's deadline, and a caller that cancels drops out alone.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*Response, error) {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	ch := c.flights.DoChan(key, func() (interface{}, error) {
		return c.request(context.WithoutCancel(ctx), http.MethodGet, path, query, nil, "")
	})
	select {
	case <-ctx.Done():
		c.flights.Forget(key)
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Response), nil
	}
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body)
}

func (c *Client) putJSON(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPut, path, body)
}

func (c *Client) patchJSON(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPatch, path, body)
}

func (c *Client) delete(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodDelete, path, nil, nil, "")
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	return c.request(ctx, method, path, nil, reader, "application/json")
}

// postMultipart uploads a file under the "file" form field.
func (c *Client) postMultipart(ctx context.Context, path, filename string, file io.Reader) (*Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return c.request(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType())
}

// request is the one place a request is built, sent, and interpreted.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*Response, error) {
	// Centralized timeout: apply the transport timeout as a deadline
	// when the caller did not set one.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.httpClient.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	reqID := uuid.NewString()[:8]
	started := time.Now()
	logging.APIDebug("[%s] %s %s", reqID, method, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("[%s] %s %s failed after %v: %v", reqID, method, path, time.Since(started), err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.APIError("[%s] failed to read response: %v", reqID, err)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Global auth failure: drop the session once, centrally, then
		// hand control to whoever owns navigation.
		logging.APIWarn("[%s] %s %s returned 401, clearing session", reqID, method, path)
		if c.session != nil {
			if clearErr := c.session.Clear(); clearErr != nil {
				logging.SessionError("failed to clear session after 401: %v", clearErr)
			}
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet(raw)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.APIError("[%s] %s %s returned %d in %v", reqID, method, path, resp.StatusCode, time.Since(started))
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet(raw)}
	}

	if isAttachment(resp.Header) {
		logging.API("[%s] %s %s returned attachment (%d bytes) in %v", reqID, method, path, len(raw), time.Since(started))
		return &Response{
			Success:  true,
			Blob:     raw,
			Filename: attachmentFilename(resp.Header),
		}, nil
	}

	parsed := parseBody(raw)
	logging.API("[%s] %s %s returned %d in %v (success=%v)", reqID, method, path, resp.StatusCode, time.Since(started), parsed.Success)
	return parsed, nil
}

// snippet trims a response body down to something loggable.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

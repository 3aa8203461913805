// Package endpoint is the JSON-over-HTTP client for the search service.
//
// One Client serves both collaborators that talk to the service: the schema
// provider (GET /properties) and the request sink (POST /search). Transport
// comes from go-cleanhttp's pooled client with TLS 1.2 as the floor.
package endpoint

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"

	"github.com/solatis/querybuilder/internal/logging"
	"github.com/solatis/querybuilder/internal/types"
)

// StatusError is returned for non-2xx responses.
// Message carries the service's {"message": ...} body when present.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s failed with status code %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s failed with status code %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// Client issues JSON requests against one base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient returns a client for baseURL with the given per-request timeout.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = logging.Discard()
	}
	client := DefaultHTTPClient()
	client.Timeout = timeout
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		log:     log.With(slog.String("component", "endpoint")),
	}
}

// DefaultHTTPClient returns a pooled client with minimum TLS version set.
func DefaultHTTPClient() *http.Client {
	client := cleanhttp.DefaultPooledClient()
	if tr, ok := client.Transport.(*http.Transport); tr != nil && ok {
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{} // #nosec G402
		}
		tr.TLSClientConfig.MinVersion = tls.VersionTLS12
	}
	return client
}

// BaseURL returns the service root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON fetches path and decodes the response body into dest.
func (c *Client) GetJSON(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodGet, path, nil, dest)
}

// PostJSON encodes body, posts it to path and decodes the response into dest.
func (c *Client) PostJSON(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, body, dest)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	t := logging.StartTimed()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, types.MaxResponseBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	c.log.Debug("received response",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status_code", resp.StatusCode),
		slog.Int("bytes", len(data)),
		slog.Int64("duration.ms", t.ElapsedMs()))

	if len(data) > types.MaxResponseBytes {
		return fmt.Errorf("%s %s: response exceeds %d bytes", method, url, types.MaxResponseBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	if dest == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// errorMessage extracts {"message": "..."} from an error body, else the trimmed text.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	text := strings.TrimSpace(string(data))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var serr *StatusError
	return errors.As(err, &serr) && serr.StatusCode == code
}

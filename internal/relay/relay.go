// Package relay is the single chokepoint for every call the portal makes to
// the library backend. It forwards the caller's cookies, tags each request
// with a correlation ID, and maps authorization failures to sentinel errors
// so that handlers anywhere in the panel tree fall back consistently instead
// of branching per call site.
package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Sentinel errors for the two globally handled authorization failures.
// Callers must not touch the response body once either is returned.
var (
	ErrUnauthorized = errors.New("relay: unauthorized")
	ErrForbidden    = errors.New("relay: forbidden")
)

// StatusError is returned for any other non-2xx backend response. It is
// handled locally at the call site, never globally.
type StatusError struct {
	StatusCode int
	Body       string // plain-text body, truncated; empty unless captured
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Credentials carries the inbound browser cookies that authenticate the
// caller against the backend. The portal itself holds no backend tokens.
type Credentials struct {
	Cookie string
}

// CredentialsFromRequest extracts backend credentials from an inbound
// portal request.
func CredentialsFromRequest(r *http.Request) Credentials {
	return Credentials{Cookie: r.Header.Get("Cookie")}
}

// Client relays requests to the library backend.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a relay client for the given backend base URL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be absolute", baseURL)
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: timeout,
			// The backend's OAuth redirects are full-page navigations owned
			// by the browser, not the relay.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// BaseURL returns the backend base URL, used for full-page navigations such
// as the OAuth login redirect.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// maxErrorBody limits how much of a failed response body is captured for
// error messages.
const maxErrorBody = 512

// do issues one backend request and applies the global 401/403 mapping.
// On ErrUnauthorized and ErrForbidden the body is drained and closed before
// returning, so callers can never read it.
func (c *Client) do(ctx context.Context, creds Credentials, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	u := c.base.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}

	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling backend %s %s: %w", method, path, err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		drain(resp)
		slog.Warn("backend rejected credentials", "method", method, "path", path)
		return nil, ErrUnauthorized
	case http.StatusForbidden:
		drain(resp)
		slog.Warn("backend denied access", "method", method, "path", path)
		return nil, ErrForbidden
	}

	return resp, nil
}

// drain discards and closes a response body so the underlying connection
// can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}

// statusError builds a StatusError from a non-2xx response, capturing a
// short plain-text body excerpt.
func statusError(resp *http.Response) error {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(excerpt)),
	}
}

// GetJSON fetches path and decodes a 2xx JSON response into v.
func (c *Client) GetJSON(ctx context.Context, creds Credentials, path string, v any) error {
	resp, err := c.do(ctx, creds, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// send marshals in (when non-nil) and issues a JSON-bodied request,
// expecting a 2xx response.
func (c *Client) send(ctx context.Context, creds Credentials, method, path string, in any) error {
	var body io.Reader
	contentType := ""

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", path, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, creds, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// PostJSON relays a JSON POST to the backend.
func (c *Client) PostJSON(ctx context.Context, creds Credentials, path string, in any) error {
	return c.send(ctx, creds, http.MethodPost, path, in)
}

// PutJSON relays a JSON PUT to the backend.
func (c *Client) PutJSON(ctx context.Context, creds Credentials, path string, in any) error {
	return c.send(ctx, creds, http.MethodPut, path, in)
}

// Put relays a bodyless PUT, used for state transitions such as
// approve/reject/return.
func (c *Client) Put(ctx context.Context, creds Credentials, path string) error {
	return c.send(ctx, creds, http.MethodPut, path, nil)
}

// Post relays a bodyless POST, used for /logout.
func (c *Client) Post(ctx context.Context, creds Credentials, path string) error {
	return c.send(ctx, creds, http.MethodPost, path, nil)
}

// Delete relays a DELETE to the backend.
func (c *Client) Delete(ctx context.Context, creds Credentials, path string) error {
	return c.send(ctx, creds, http.MethodDelete, path, nil)
}

// PostFile relays a single-file multipart upload. The backend reports upload
// failures as plain text, which is surfaced via StatusError.Body.
func (c *Client) PostFile(ctx context.Context, creds Credentials, path, field, filename string, data []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("writing multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	resp, err := c.do(ctx, creds, http.MethodPost, path, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

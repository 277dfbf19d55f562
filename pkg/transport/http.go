package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MaxResponseBytes bounds how much of a response body is read.
const MaxResponseBytes = 1 << 20

// HTTP implements Transport over net/http.
type HTTP struct {
	client  *http.Client
	baseURL *url.URL
	timeout time.Duration
}

var _ Transport = (*HTTP)(nil)

// HTTPOption configures the HTTP transport.
type HTTPOption func(*HTTP)

// WithHTTPClient overrides the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// WithTimeout caps the duration of each request. Zero disables the cap.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.timeout = timeout
	}
}

// NewHTTP builds a transport resolving relative endpoints against baseURL.
// An empty baseURL requires callers to pass absolute endpoints.
func NewHTTP(baseURL string, options ...HTTPOption) (*HTTP, error) {
	h := &HTTP{client: http.DefaultClient}
	if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: base url %q: %v", ErrInvalidEndpoint, baseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("%w: base url %q must be absolute", ErrInvalidEndpoint, baseURL)
		}
		h.baseURL = parsed
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h, nil
}

// Do sends req and reads the full response body.
func (h *HTTP) Do(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	target, err := h.resolve(req.Endpoint)
	if err != nil {
		return Response{}, err
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(req.Body))
	if err != nil {
		return Response{}, fmt.Errorf("transport: build request: %w", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("transport: %s %s: %w", method, target, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, MaxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("transport: read response: %w", err)
	}

	resp := Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       body,
	}
	if !resp.Success() {
		return resp, &StatusError{Response: resp}
	}
	return resp, nil
}

func (h *HTTP) resolve(endpoint string) (string, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	ref, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidEndpoint, endpoint, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if h.baseURL == nil {
		return "", fmt.Errorf("%w: %q is relative and no base url is configured", ErrInvalidEndpoint, endpoint)
	}
	return h.baseURL.ResolveReference(ref).String(), nil
}

// Package transport sends submission payloads to the backend. The Transport
// contract keeps the controller independent of net/http so hosts can plug in
// a browser fetch bridge, a recording stub, or the HTTP implementation here.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const (
	// ContentTypeJSON is sent with every submission.
	ContentTypeJSON = "application/json"
	// DefaultEndpoint is the path submissions are posted to.
	DefaultEndpoint = "/api"
)

var (
	// ErrNilTransport is returned when a nil Transport is supplied.
	ErrNilTransport = errors.New("transport: transport is nil")
	// ErrInvalidEndpoint is returned for endpoints that cannot be resolved.
	ErrInvalidEndpoint = errors.New("transport: invalid endpoint")
)

// Request is a single outbound call.
type Request struct {
	Method   string
	Endpoint string
	Header   http.Header
	Body     []byte
}

// Response is what came back from the server.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Success reports whether the status is in the 2xx range.
func (r Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport delivers a Request. Implementations return a *StatusError when
// the server answers with a non-2xx status and a plain error when no
// response was received at all.
type Transport interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, req Request) (Response, error)

// Do calls f(ctx, req).
func (f Func) Do(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// StatusError carries a non-2xx response.
type StatusError struct {
	Response Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: server responded %d %s", e.Response.StatusCode, http.StatusText(e.Response.StatusCode))
}

// NewJSONRequest builds a POST request with JSON headers.
func NewJSONRequest(endpoint string, body []byte) Request {
	header := make(http.Header, 2)
	header.Set("Content-Type", ContentTypeJSON)
	header.Set("Accept", ContentTypeJSON)
	return Request{
		Method:   http.MethodPost,
		Endpoint: endpoint,
		Header:   header,
		Body:     body,
	}
}

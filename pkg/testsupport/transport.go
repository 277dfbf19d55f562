package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/goliatone/go-formsubmit/pkg/model"
	"github.com/goliatone/go-formsubmit/pkg/transport"
)

// ErrNoResponseScripted is returned by Recorder when it runs out of replies.
var ErrNoResponseScripted = errors.New("testsupport: no response scripted")

// Reply is a scripted transport result.
type Reply struct {
	Status int
	Body   string
	Err    error
}

// OK replies 200 with a JSON result body.
func OK() Reply {
	return Reply{Status: http.StatusOK, Body: `{"result":"OK"}`}
}

// Fail replies with status and an {"error": message} body.
func Fail(status int, message string) Reply {
	body, _ := json.Marshal(map[string]string{"error": message})
	return Reply{Status: status, Body: string(body)}
}

// Recorder is a transport.Transport that records requests and answers with
// scripted replies in order. Gate, when set, blocks each call until a value
// is received or the context ends, letting tests hold a request in flight.
type Recorder struct {
	Gate chan struct{}

	mu       sync.Mutex
	replies  []Reply
	requests []transport.Request
	started  chan struct{}
}

var _ transport.Transport = (*Recorder)(nil)

// NewRecorder returns a recorder that will answer with replies.
func NewRecorder(replies ...Reply) *Recorder {
	return &Recorder{
		replies: replies,
		started: make(chan struct{}, 16),
	}
}

// Do implements transport.Transport.
func (r *Recorder) Do(ctx context.Context, req transport.Request) (transport.Response, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	var reply Reply
	var ok bool
	if len(r.replies) > 0 {
		reply, r.replies = r.replies[0], r.replies[1:]
		ok = true
	}
	r.mu.Unlock()

	select {
	case r.started <- struct{}{}:
	default:
	}

	if r.Gate != nil {
		select {
		case <-r.Gate:
		case <-ctx.Done():
			return transport.Response{}, ctx.Err()
		}
	}

	if !ok {
		return transport.Response{}, ErrNoResponseScripted
	}
	if reply.Err != nil {
		return transport.Response{}, reply.Err
	}
	resp := transport.Response{
		StatusCode: reply.Status,
		Header:     http.Header{"Content-Type": []string{transport.ContentTypeJSON}},
		Body:       []byte(reply.Body),
	}
	if !resp.Success() {
		return resp, &transport.StatusError{Response: resp}
	}
	return resp, nil
}

// Started is signalled every time Do is entered.
func (r *Recorder) Started() <-chan struct{} {
	return r.started
}

// Requests returns the recorded requests.
func (r *Recorder) Requests() []transport.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]transport.Request(nil), r.requests...)
}

// DecodePayload decodes a recorded request body, failing the test when it is
// not a flat JSON object of strings.
func DecodePayload(t *testing.T, req transport.Request) *model.Payload {
	t.Helper()
	var payload model.Payload
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		t.Fatalf("decode payload %q: %v", req.Body, err)
	}
	return &payload
}

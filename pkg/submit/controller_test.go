package submit_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsubmit/pkg/model"
	"github.com/goliatone/go-formsubmit/pkg/submit"
	"github.com/goliatone/go-formsubmit/pkg/testsupport"
	"github.com/goliatone/go-formsubmit/pkg/transport"
	"github.com/goliatone/go-formsubmit/pkg/view"
)

func newController(t *testing.T, fields model.FieldSet, rec *testsupport.Recorder, opts ...submit.Option) (*submit.Controller, *view.Memory) {
	t.Helper()
	mem := view.NewMemory(fields)
	ctrl, err := submit.New(fields, mem, rec, opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl, mem
}

func TestHandleSubmit_BaseFormSuccessClearsFields(t *testing.T) {
	rec := testsupport.NewRecorder(testsupport.OK())
	ctrl, mem := newController(t, model.BaseFields(), rec)

	_ = mem.SetStatus("stale error")
	if err := mem.Fill(map[string]string{"name": "Alice", "content": "Hello"}); err != nil {
		t.Fatalf("fill: %v", err)
	}

	outcome, err := ctrl.HandleSubmit(context.Background())
	if err != nil {
		t.Fatalf("handle submit: %v", err)
	}
	if outcome.Kind != submit.OutcomeSucceeded {
		t.Fatalf("outcome = %s, want succeeded", outcome.Kind)
	}

	reqs := rec.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Method != http.MethodPost || req.Endpoint != "/api" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Endpoint)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
	if got := string(req.Body); got != `{"name":"Alice","content":"Hello"}` {
		t.Fatalf("body = %s", got)
	}

	want := map[string]string{"name": "", "content": ""}
	if diff := cmp.Diff(want, mem.Values()); diff != "" {
		t.Fatalf("fields not cleared (-want +got):\n%s", diff)
	}
	if mem.Status() != "" {
		t.Fatalf("status = %q, want empty", mem.Status())
	}
}

func TestHandleSubmit_EmailFormFailureKeepsFields(t *testing.T) {
	rec := testsupport.NewRecorder(testsupport.Fail(http.StatusBadRequest, "Invalid email"))
	ctrl, mem := newController(t, model.EmailFields(), rec)

	values := map[string]string{"name": "Bob", "email": "bob@example.com", "content": "Hi"}
	if err := mem.Fill(values); err != nil {
		t.Fatalf("fill: %v", err)
	}

	outcome, err := ctrl.HandleSubmit(context.Background())
	if err != nil {
		t.Fatalf("handle submit: %v", err)
	}
	if outcome.Kind != submit.OutcomeFailed || outcome.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	var statusErr *transport.StatusError
	if !errors.As(outcome.Err, &statusErr) {
		t.Fatalf("expected StatusError in outcome, got %v", outcome.Err)
	}

	if got := string(rec.Requests()[0].Body); got != `{"name":"Bob","email":"bob@example.com","content":"Hi"}` {
		t.Fatalf("body = %s", got)
	}
	if mem.Status() != "Invalid email" {
		t.Fatalf("status = %q, want %q", mem.Status(), "Invalid email")
	}
	if diff := cmp.Diff(values, mem.Values()); diff != "" {
		t.Fatalf("fields changed on failure (-want +got):\n%s", diff)
	}
}

func TestHandleSubmit_PayloadFidelity(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "all empty", values: map[string]string{"name": "", "email": "", "content": ""}},
		{name: "whitespace kept", values: map[string]string{"name": "  Ada ", "email": "\t", "content": "line1\nline2"}},
		{name: "unicode and markup", values: map[string]string{"name": "名前", "email": "not-an-email", "content": "<b>hi</b> & bye"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testsupport.NewRecorder(testsupport.OK())
			ctrl, mem := newController(t, model.EmailFields(), rec)
			if err := mem.Fill(tt.values); err != nil {
				t.Fatalf("fill: %v", err)
			}
			if _, err := ctrl.HandleSubmit(context.Background()); err != nil {
				t.Fatalf("handle submit: %v", err)
			}

			payload := testsupport.DecodePayload(t, rec.Requests()[0])
			if diff := cmp.Diff([]string{"name", "email", "content"}, payload.Names()); diff != "" {
				t.Fatalf("keys mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.values, payload.Map()); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandleSubmit_ErrorSurfacedVerbatim(t *testing.T) {
	for _, message := range []string{"名前は必須入力です", "  padded  ", "", "line\nbreak"} {
		rec := testsupport.NewRecorder(testsupport.Fail(http.StatusUnprocessableEntity, message))
		ctrl, mem := newController(t, model.BaseFields(), rec)
		_ = mem.Fill(map[string]string{"name": "x", "content": "y"})
		_ = mem.SetStatus("previous")

		if _, err := ctrl.HandleSubmit(context.Background()); err != nil {
			t.Fatalf("handle submit: %v", err)
		}
		if mem.Status() != message {
			t.Fatalf("status = %q, want %q", mem.Status(), message)
		}
	}
}

func TestHandleSubmit_FallbackMessage(t *testing.T) {
	tests := []struct {
		name  string
		reply testsupport.Reply
	}{
		{name: "missing error key", reply: testsupport.Reply{Status: http.StatusBadRequest, Body: `{"message":"nope"}`}},
		{name: "non string error", reply: testsupport.Reply{Status: http.StatusBadRequest, Body: `{"error":{"name":"required"}}`}},
		{name: "html body", reply: testsupport.Reply{Status: http.StatusBadGateway, Body: `<html>bad gateway</html>`}},
		{name: "empty body", reply: testsupport.Reply{Status: http.StatusInternalServerError}},
		{name: "network failure", reply: testsupport.Reply{Err: errors.New("connection refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testsupport.NewRecorder(tt.reply)
			ctrl, mem := newController(t, model.BaseFields(), rec, submit.WithFallbackMessage("Something went wrong"))
			_ = mem.Fill(map[string]string{"name": "Alice", "content": "Hello"})

			outcome, err := ctrl.HandleSubmit(context.Background())
			if err != nil {
				t.Fatalf("handle submit: %v", err)
			}
			if outcome.Kind != submit.OutcomeFailed {
				t.Fatalf("outcome = %s", outcome.Kind)
			}
			if mem.Status() != "Something went wrong" {
				t.Fatalf("status = %q", mem.Status())
			}
			if got, _ := mem.FieldValue("name"); got != "Alice" {
				t.Fatalf("name cleared on failure: %q", got)
			}
		})
	}
}

func TestBind_IsIdempotent(t *testing.T) {
	rec := testsupport.NewRecorder(testsupport.OK(), testsupport.OK())
	ctrl, mem := newController(t, model.BaseFields(), rec)

	for i := 0; i < 3; i++ {
		if err := ctrl.Bind(context.Background(), mem); err != nil {
			t.Fatalf("bind %d: %v", i, err)
		}
	}
	if !ctrl.Bound() {
		t.Fatalf("controller should report bound")
	}
	if mem.HandlerCount() != 1 {
		t.Fatalf("expected 1 handler, got %d", mem.HandlerCount())
	}

	mem.Click()
	if got := len(rec.Requests()); got != 1 {
		t.Fatalf("expected 1 request per click, got %d", got)
	}

	if err := ctrl.Bind(context.Background(), nil); !errors.Is(err, submit.ErrNilTrigger) {
		t.Fatalf("expected ErrNilTrigger, got %v", err)
	}
}

func TestBind_ReportsOutcomes(t *testing.T) {
	rec := testsupport.NewRecorder(testsupport.Fail(http.StatusBadRequest, "name: required"))
	var outcomes []submit.Outcome
	ctrl, mem := newController(t, model.BaseFields(), rec, submit.WithOutcomeHook(func(o submit.Outcome) {
		outcomes = append(outcomes, o)
	}))
	if err := ctrl.Bind(context.Background(), mem); err != nil {
		t.Fatalf("bind: %v", err)
	}

	mem.Click()

	if len(outcomes) != 1 || outcomes[0].Kind != submit.OutcomeFailed || outcomes[0].Message != "name: required" {
		t.Fatalf("unexpected outcomes %+v", outcomes)
	}
}

func TestHandleSubmit_SkipsWhileInFlight(t *testing.T) {
	rec := testsupport.NewRecorder(testsupport.OK())
	rec.Gate = make(chan struct{})
	ctrl, mem := newController(t, model.BaseFields(), rec)
	_ = mem.Fill(map[string]string{"name": "Alice", "content": "Hello"})

	done := make(chan submit.Outcome, 1)
	go func() {
		outcome, _ := ctrl.HandleSubmit(context.Background())
		done <- outcome
	}()

	select {
	case <-rec.Started():
	case <-time.After(2 * time.Second):
		t.Fatalf("first submission never reached the transport")
	}
	if ctrl.State() != submit.StateSubmitting {
		t.Fatalf("state = %s, want submitting", ctrl.State())
	}

	outcome, err := ctrl.HandleSubmit(context.Background())
	if !errors.Is(err, submit.ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
	if outcome.Kind != submit.OutcomeSkipped {
		t.Fatalf("outcome = %s, want skipped", outcome.Kind)
	}

	rec.Gate <- struct{}{}
	select {
	case first := <-done:
		if first.Kind != submit.OutcomeSucceeded {
			t.Fatalf("first outcome = %s", first.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("first submission did not finish")
	}

	if got := len(rec.Requests()); got != 1 {
		t.Fatalf("expected exactly 1 request, got %d", got)
	}
	if ctrl.State() != submit.StateIdle {
		t.Fatalf("state = %s, want idle", ctrl.State())
	}
}

func TestHandleSubmit_MissingFieldSendsNothing(t *testing.T) {
	rec := testsupport.NewRecorder(testsupport.OK())
	mem := view.NewMemory(model.BaseFields())
	ctrl, err := submit.New(model.EmailFields(), mem, rec)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	_ = mem.SetStatus("untouched")

	_, err = ctrl.HandleSubmit(context.Background())
	if !errors.Is(err, view.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
	if len(rec.Requests()) != 0 {
		t.Fatalf("no request should be sent")
	}
	if mem.Status() != "untouched" {
		t.Fatalf("status changed to %q", mem.Status())
	}
}

func TestHandleSubmit_CustomEndpoint(t *testing.T) {
	rec := testsupport.NewRecorder(testsupport.OK())
	ctrl, _ := newController(t, model.BaseFields(), rec, submit.WithEndpoint("/v1/comments"))
	if _, err := ctrl.HandleSubmit(context.Background()); err != nil {
		t.Fatalf("handle submit: %v", err)
	}
	if got := rec.Requests()[0].Endpoint; got != "/v1/comments" {
		t.Fatalf("endpoint = %q", got)
	}
}

func TestNew_Validation(t *testing.T) {
	rec := testsupport.NewRecorder()
	if _, err := submit.New(model.BaseFields(), nil, rec); !errors.Is(err, submit.ErrNilView) {
		t.Fatalf("expected ErrNilView, got %v", err)
	}
	mem := view.NewMemory(model.BaseFields())
	if _, err := submit.New(model.BaseFields(), mem, nil); !errors.Is(err, transport.ErrNilTransport) {
		t.Fatalf("expected ErrNilTransport, got %v", err)
	}
	if _, err := submit.New(model.NewFieldSet("dup", "name", "name"), mem, rec); !errors.Is(err, model.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

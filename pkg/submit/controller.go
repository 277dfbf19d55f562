package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-formsubmit/pkg/model"
	"github.com/goliatone/go-formsubmit/pkg/transport"
	"github.com/goliatone/go-formsubmit/pkg/view"
)

// Controller submits the values of a field set read from a view.
type Controller struct {
	fields    model.FieldSet
	view      view.View
	transport transport.Transport
	endpoint  string
	fallback  string
	logger    *log.Logger
	onOutcome func(Outcome)

	bindOnce sync.Once
	bound    atomic.Bool
	inFlight atomic.Bool
}

// New constructs a controller for fields rendered by v. The field set is
// copied; later changes to the caller's slice do not affect the controller.
func New(fields model.FieldSet, v view.View, t transport.Transport, options ...Option) (*Controller, error) {
	if v == nil {
		return nil, ErrNilView
	}
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	c := &Controller{
		fields:    fields.Clone(),
		view:      v,
		transport: t,
		endpoint:  transport.DefaultEndpoint,
		fallback:  DefaultFallbackMessage,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.transport == nil {
		return nil, transport.ErrNilTransport
	}
	return c, nil
}

// Fields returns a copy of the controller's field set.
func (c *Controller) Fields() model.FieldSet {
	return c.fields.Clone()
}

// Endpoint reports where submissions are posted.
func (c *Controller) Endpoint() string {
	return c.endpoint
}

// State reports whether a submission is outstanding.
func (c *Controller) State() State {
	if c.inFlight.Load() {
		return StateSubmitting
	}
	return StateIdle
}

// Bound reports whether Bind has attached the controller to a trigger.
func (c *Controller) Bound() bool {
	return c.bound.Load()
}

// Bind attaches the submit handler to trigger. Only the first call has an
// effect; later calls return nil without registering another handler, so a
// single trigger event never causes duplicate submissions. Each triggered
// submission runs with ctx.
func (c *Controller) Bind(ctx context.Context, trigger view.Trigger) error {
	if trigger == nil {
		return ErrNilTrigger
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.bindOnce.Do(func() {
		trigger.OnSubmit(func() {
			if _, err := c.HandleSubmit(ctx); err != nil && !errors.Is(err, ErrSubmissionInFlight) {
				c.logger.Printf("submit: %v", err)
			}
		})
		c.bound.Store(true)
	})
	return nil
}

// HandleSubmit runs one submission cycle. Failures reported by the server
// or the network are not returned as errors: they end in an OutcomeFailed
// with the message already written to the view. The returned error is
// reserved for problems with the view itself and for skipped submissions
// (ErrSubmissionInFlight).
func (c *Controller) HandleSubmit(ctx context.Context) (Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		outcome := Outcome{Kind: OutcomeSkipped, Err: ErrSubmissionInFlight}
		c.report(outcome)
		return outcome, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	payload, err := c.collect()
	if err != nil {
		outcome := Outcome{Kind: OutcomeFailed, Err: err}
		c.report(outcome)
		return outcome, err
	}

	body, err := payload.MarshalJSON()
	if err != nil {
		err = fmt.Errorf("submit: encode payload: %w", err)
		outcome := Outcome{Kind: OutcomeFailed, Err: err}
		c.report(outcome)
		return outcome, err
	}

	resp, sendErr := c.transport.Do(ctx, transport.NewJSONRequest(c.endpoint, body))
	if sendErr == nil && resp.Success() {
		outcome := Outcome{Kind: OutcomeSucceeded, StatusCode: resp.StatusCode}
		if err := c.reset(); err != nil {
			outcome.Err = err
			c.report(outcome)
			return outcome, err
		}
		c.logger.Printf("submit: %s accepted (%d)", c.endpoint, resp.StatusCode)
		c.report(outcome)
		return outcome, nil
	}

	outcome := c.failure(resp, sendErr)
	if err := c.view.SetStatus(outcome.Message); err != nil {
		err = fmt.Errorf("submit: set status: %w", err)
		c.report(outcome)
		return outcome, err
	}
	c.logger.Printf("submit: %s rejected: %v", c.endpoint, outcome.Err)
	c.report(outcome)
	return outcome, nil
}

func (c *Controller) collect() (*model.Payload, error) {
	payload := model.NewPayload(c.fields.Len())
	for _, field := range c.fields.Fields {
		value, err := c.view.FieldValue(field.Name)
		if err != nil {
			return nil, fmt.Errorf("submit: read field %q: %w", field.Name, err)
		}
		payload.Set(field.Name, value)
	}
	return payload, nil
}

func (c *Controller) reset() error {
	if err := c.view.SetStatus(""); err != nil {
		return fmt.Errorf("submit: clear status: %w", err)
	}
	for _, field := range c.fields.Fields {
		if err := c.view.SetFieldValue(field.Name, ""); err != nil {
			return fmt.Errorf("submit: clear field %q: %w", field.Name, err)
		}
	}
	return nil
}

func (c *Controller) failure(resp transport.Response, sendErr error) Outcome {
	outcome := Outcome{Kind: OutcomeFailed, StatusCode: resp.StatusCode, Err: sendErr}

	var statusErr *transport.StatusError
	if errors.As(sendErr, &statusErr) {
		resp = statusErr.Response
		outcome.StatusCode = resp.StatusCode
	}
	if outcome.Err == nil {
		outcome.Err = &transport.StatusError{Response: resp}
	}
	outcome.Message = ErrorMessage(resp.Body, c.fallback)
	return outcome
}

func (c *Controller) report(outcome Outcome) {
	if c.onOutcome != nil {
		c.onOutcome(outcome)
	}
}

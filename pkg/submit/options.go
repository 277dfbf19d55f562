package submit

import (
	"log"
	"strings"

	"github.com/goliatone/go-formsubmit/pkg/transport"
)

// Option configures a Controller.
type Option func(*Controller)

// WithEndpoint overrides the path (or absolute URL) submissions are posted
// to. Defaults to transport.DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithFallbackMessage sets the status text used when a failure carries no
// usable error message.
func WithFallbackMessage(message string) Option {
	return func(c *Controller) {
		if message != "" {
			c.fallback = message
		}
	}
}

// WithLogger routes controller diagnostics to logger. Nil keeps the
// discarding default.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOutcomeHook registers fn to observe every outcome produced by a bound
// trigger. Direct HandleSubmit callers receive the outcome as a return value
// and the hook is invoked for them too.
func WithOutcomeHook(fn func(Outcome)) Option {
	return func(c *Controller) {
		c.onOutcome = fn
	}
}

// WithTransport replaces the transport passed to New.
func WithTransport(t transport.Transport) Option {
	return func(c *Controller) {
		if t != nil {
			c.transport = t
		}
	}
}

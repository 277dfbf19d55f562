package server

import (
	"io"
	"io/fs"
	"log"
	"strings"

	"github.com/goliatone/go-formsubmit/pkg/model"
)

// Option configures the server before construction.
type Option func(*Server)

// WithFields sets the field set served on the host page and checked on
// submission. Only declared fields are validated and stored.
func WithFields(fields model.FieldSet) Option {
	return func(s *Server) {
		s.fields = fields
	}
}

// WithLabeler sets how host page inputs are labelled for fields without an
// explicit label.
func WithLabeler(labeler model.Labeler) Option {
	return func(s *Server) {
		if labeler != nil {
			s.labeler = labeler
		}
	}
}

// WithEndpoint overrides the submission path. Defaults to /api.
func WithEndpoint(path string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			s.endpoint = trimmed
		}
	}
}

// WithStore replaces the in-memory comment store.
func WithStore(store Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStaticDir serves files under dir at /static, typically the compiled
// browser client and wasm_exec.js.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.staticDir = strings.TrimSpace(dir)
	}
}

// WithWASM names the browser client served from the static directory. The
// host page loads it when set.
func WithWASM(name string) Option {
	return func(s *Server) {
		s.wasm = strings.TrimSpace(name)
	}
}

// WithTitle sets the host page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithLogger routes server diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRequestLog writes one access log line per request to w. Request
// logging is off unless configured.
func WithRequestLog(w io.Writer) Option {
	return func(s *Server) {
		s.requestLog = w
	}
}

// WithTemplates overrides host page templates. Files missing from templates
// fall back to the embedded defaults.
func WithTemplates(templates fs.FS) Option {
	return func(s *Server) {
		s.templates = templates
	}
}

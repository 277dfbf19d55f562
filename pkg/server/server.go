package server

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formsubmit/pkg/model"
)

const (
	// DefaultEndpoint is the submission path.
	DefaultEndpoint = "/api"
	// StaticPrefix is where WithStaticDir files are served.
	StaticPrefix = "/static"
)

// Server is the reference comment backend.
type Server struct {
	echo       *echo.Echo
	fields     model.FieldSet
	endpoint   string
	store      Store
	sanitizer  *bluemonday.Policy
	page       *pageRenderer
	staticDir  string
	wasm       string
	title      string
	templates  fs.FS
	labeler    model.Labeler
	logger     *log.Logger
	requestLog io.Writer
}

// New builds the server and registers its routes.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		fields:    model.BaseFields(),
		endpoint:  DefaultEndpoint,
		store:     NewMemoryStore(0),
		sanitizer: bluemonday.StrictPolicy(),
		title:     "Comments",
		labeler:   model.DefaultLabeler,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.fields.Validate(); err != nil {
		return nil, err
	}
	s.page = newPageRenderer("message", "submit", StaticPrefix, s.templates)
	s.page.labeler = s.labeler

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	if s.requestLog != nil {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Output: s.requestLog}))
	}
	e.Use(middleware.Recover())

	e.GET("/", s.index)
	e.POST(s.endpoint, s.createComment)
	e.GET(s.endpoint+"/comments", s.listComments)
	if s.staticDir != "" {
		e.Static(StaticPrefix, s.staticDir)
	}

	s.echo = e
	return s, nil
}

// Handler exposes the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Printf("listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

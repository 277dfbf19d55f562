// Package formsubmit wires configuration, field sets, the HTTP transport and
// the submission controller together. Hosts that only need the controller
// can use pkg/submit directly; binaries use the helpers here.
package formsubmit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formsubmit/internal/config"
	"github.com/goliatone/go-formsubmit/pkg/model"
	pkgopenapi "github.com/goliatone/go-formsubmit/pkg/openapi"
	"github.com/goliatone/go-formsubmit/pkg/submit"
	"github.com/goliatone/go-formsubmit/pkg/transport"
	"github.com/goliatone/go-formsubmit/pkg/view"
)

// Config aliases the settings loaded by LoadConfig.
type Config = config.Config

// Form is a resolved field set and the path it submits to.
type Form struct {
	Fields   model.FieldSet
	Endpoint string
}

// LoadConfig reads an optional YAML file and FORMSUBMIT_* overrides.
func LoadConfig(filename string) (*Config, error) {
	return config.Load(filename)
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	cfg := config.Defaults()
	return &cfg
}

// ResolveForm picks the field set named by cfg. An OpenAPI source wins over
// a fields file, which wins over the built-in variant. Forms derived from an
// OpenAPI operation submit to that operation's path.
func ResolveForm(ctx context.Context, cfg *Config, options ...pkgopenapi.LoaderOption) (Form, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	form := Form{Endpoint: cfg.Endpoint.Path}

	switch {
	case strings.TrimSpace(cfg.Form.OpenAPI.Source) != "":
		src, err := pkgopenapi.ParseSource(cfg.Form.OpenAPI.Source)
		if err != nil {
			return Form{}, err
		}
		if src.Kind() == pkgopenapi.SourceKindURL {
			options = append([]pkgopenapi.LoaderOption{pkgopenapi.WithHTTPFallback(cfg.Endpoint.Timeout)}, options...)
		}
		derived, err := pkgopenapi.LoadForm(ctx, NewLoader(options...), NewParser(), src, cfg.Form.OpenAPI.Operation)
		if err != nil {
			return Form{}, err
		}
		form.Fields = derived.Fields
		if derived.Endpoint != "" {
			form.Endpoint = derived.Endpoint
		}
	case strings.TrimSpace(cfg.Form.FieldsFile) != "":
		path := filepath.Clean(cfg.Form.FieldsFile)
		fields, err := model.LoadFieldSet(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return Form{}, err
		}
		form.Fields = fields
	default:
		fields, err := model.Variant(cfg.Form.Variant)
		if err != nil {
			return Form{}, err
		}
		form.Fields = fields
	}
	return form, nil
}

// NewTransport builds the HTTP transport for cfg.Endpoint.
func NewTransport(cfg *Config, options ...transport.HTTPOption) (*transport.HTTP, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	opts := append([]transport.HTTPOption{transport.WithTimeout(cfg.Endpoint.Timeout)}, options...)
	t, err := transport.NewHTTP(cfg.Endpoint.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("formsubmit: transport: %w", err)
	}
	return t, nil
}

// NewController builds a controller for form over v. The endpoint and
// fallback message come from form and cfg; options are applied last.
func NewController(cfg *Config, form Form, v view.View, t transport.Transport, options ...submit.Option) (*submit.Controller, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	opts := []submit.Option{
		submit.WithEndpoint(form.Endpoint),
		submit.WithFallbackMessage(cfg.Messages.Fallback),
	}
	opts = append(opts, options...)
	return submit.New(form.Fields, v, t, opts...)
}

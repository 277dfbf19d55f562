package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Defaults(), *cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "email.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Defaults()
	want.Endpoint.BaseURL = "http://comments.internal:9000"
	want.Endpoint.Timeout = 3 * time.Second
	want.Form.Variant = "email"
	want.Messages.Fallback = "Could not send your comment"
	want.Server.Addr = "127.0.0.1:9000"
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("FORMSUBMIT_ENDPOINT_PATH", "/v2/comments")
	t.Setenv("FORMSUBMIT_FORM_VARIANT", "base")

	cfg, err := Load(filepath.Join("testdata", "email.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint.Path != "/v2/comments" {
		t.Fatalf("endpoint.path = %q", cfg.Endpoint.Path)
	}
	if cfg.Form.Variant != "base" {
		t.Fatalf("form.variant = %q", cfg.Form.Variant)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "bad_variant.yaml")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Load(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	cfg := Defaults()
	cfg.Form.OpenAPI.Source = "openapi.yaml"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected missing operation to be rejected, got %v", err)
	}
	cfg.Form.OpenAPI.Operation = "createComment"
	cfg.Form.FieldsFile = "fields.yaml"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected exclusive sources to be rejected, got %v", err)
	}
}

// Package config loads client and server settings from an optional YAML file
// overlaid with FORMSUBMIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formsubmit/pkg/model"
)

// EnvPrefix namespaces environment overrides, e.g. FORMSUBMIT_ENDPOINT_PATH.
const EnvPrefix = "FORMSUBMIT"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Endpoint Endpoint `mapstructure:"endpoint"`
	Form     Form     `mapstructure:"form"`
	Messages Messages `mapstructure:"messages"`
	Server   Server   `mapstructure:"server"`
}

type Endpoint struct {
	BaseURL string        `mapstructure:"base_url"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Form struct {
	Variant    string  `mapstructure:"variant"`
	FieldsFile string  `mapstructure:"fields_file"`
	OpenAPI    OpenAPI `mapstructure:"openapi"`
}

type OpenAPI struct {
	Source    string `mapstructure:"source"`
	Operation string `mapstructure:"operation"`
}

type Messages struct {
	Fallback string `mapstructure:"fallback"`
}

type Server struct {
	Addr      string `mapstructure:"addr"`
	StaticDir string `mapstructure:"static_dir"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Endpoint: Endpoint{
			BaseURL: "http://localhost:8989",
			Path:    "/api",
			Timeout: 10 * time.Second,
		},
		Form: Form{
			Variant: model.VariantBase,
		},
		Messages: Messages{
			Fallback: "submission failed",
		},
		Server: Server{
			Addr: ":8989",
		},
	}
}

// Load reads filename (skipped when empty) and applies env overrides on top
// of Defaults. The result is validated.
func Load(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", filename, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be caught by decoding alone.
func (c *Config) Validate() error {
	if _, err := model.Variant(c.Form.Variant); err != nil && c.Form.FieldsFile == "" && c.Form.OpenAPI.Source == "" {
		return fmt.Errorf("%w: form.variant: %v", ErrInvalidConfig, err)
	}
	if c.Form.OpenAPI.Source != "" && strings.TrimSpace(c.Form.OpenAPI.Operation) == "" {
		return fmt.Errorf("%w: form.openapi.operation is required with form.openapi.source", ErrInvalidConfig)
	}
	if c.Form.FieldsFile != "" && c.Form.OpenAPI.Source != "" {
		return fmt.Errorf("%w: form.fields_file and form.openapi.source are mutually exclusive", ErrInvalidConfig)
	}
	if c.Endpoint.Timeout < 0 {
		return fmt.Errorf("%w: endpoint.timeout must not be negative", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Endpoint.Path) == "" {
		return fmt.Errorf("%w: endpoint.path is required", ErrInvalidConfig)
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("endpoint.base_url", d.Endpoint.BaseURL)
	v.SetDefault("endpoint.path", d.Endpoint.Path)
	v.SetDefault("endpoint.timeout", d.Endpoint.Timeout)
	v.SetDefault("form.variant", d.Form.Variant)
	v.SetDefault("form.fields_file", d.Form.FieldsFile)
	v.SetDefault("form.openapi.source", d.Form.OpenAPI.Source)
	v.SetDefault("form.openapi.operation", d.Form.OpenAPI.Operation)
	v.SetDefault("messages.fallback", d.Messages.Fallback)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
}

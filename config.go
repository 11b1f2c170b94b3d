package sfreport

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the exporter configuration. Durations
// are written as Go duration strings ("30s") in YAML.
type Config struct {
	Login   LoginConfig   `json:"login" yaml:"login"`
	HTTP    HTTPConfig    `json:"http" yaml:"http"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	History HistoryConfig `json:"history" yaml:"history"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

type LoginConfig struct {
	Domain         string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Username       string `json:"username,omitempty" yaml:"username,omitempty"`
	CredentialsURL string `json:"credentialsURL,omitempty" yaml:"credentialsURL,omitempty"`
	Key            string `json:"key,omitempty" yaml:"key,omitempty"`
}

type HTTPConfig struct {
	MaxRetries     int           `json:"maxRetries" yaml:"maxRetries"`
	InitialBackoff time.Duration `json:"initialBackoff" yaml:"initialBackoff"`
	MaxBackoff     time.Duration `json:"maxBackoff" yaml:"maxBackoff"`
	LoginTimeout   time.Duration `json:"loginTimeout" yaml:"loginTimeout"`
	ListTimeout    time.Duration `json:"listTimeout" yaml:"listTimeout"`
	ExportTimeout  time.Duration `json:"exportTimeout" yaml:"exportTimeout"`
}

type ExportConfig struct {
	Delay           time.Duration `json:"delay" yaml:"delay"`
	FallbackVersion string        `json:"fallbackVersion" yaml:"fallbackVersion"`
	TempDir         string        `json:"tempDir,omitempty" yaml:"tempDir,omitempty"`
}

type HistoryConfig struct {
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Login: LoginConfig{Domain: "login"},
		HTTP: HTTPConfig{
			MaxRetries:     3,
			InitialBackoff: time.Second,
			MaxBackoff:     60 * time.Second,
			LoginTimeout:   30 * time.Second,
			ListTimeout:    60 * time.Second,
			ExportTimeout:  120 * time.Second,
		},
		Export: ExportConfig{
			Delay:           500 * time.Millisecond,
			FallbackVersion: "58.0",
		},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.HTTP.MaxRetries <= 0 {
		return fmt.Errorf("http.maxRetries must be > 0")
	}
	if c.HTTP.InitialBackoff < 0 || c.HTTP.MaxBackoff < c.HTTP.InitialBackoff {
		return fmt.Errorf("http.maxBackoff must be >= http.initialBackoff >= 0")
	}
	for name, timeout := range map[string]time.Duration{
		"http.loginTimeout":  c.HTTP.LoginTimeout,
		"http.listTimeout":   c.HTTP.ListTimeout,
		"http.exportTimeout": c.HTTP.ExportTimeout,
	} {
		if timeout <= 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}
	if c.Export.Delay < 0 {
		return fmt.Errorf("export.delay must be >= 0")
	}
	if c.Export.FallbackVersion == "" {
		return fmt.Errorf("export.fallbackVersion is required")
	}
	return nil
}

// LoadConfig reads a YAML config from any afs supported URL on top of DefaultConfig.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}

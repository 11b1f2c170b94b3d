package sfreport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(c *Config)
		expectErr   bool
	}{
		{description: "defaults", mutate: func(c *Config) {}},
		{description: "no retries", mutate: func(c *Config) { c.HTTP.MaxRetries = 0 }, expectErr: true},
		{description: "max below initial backoff", mutate: func(c *Config) { c.HTTP.MaxBackoff = time.Millisecond }, expectErr: true},
		{description: "zero export timeout", mutate: func(c *Config) { c.HTTP.ExportTimeout = 0 }, expectErr: true},
		{description: "negative delay", mutate: func(c *Config) { c.Export.Delay = -time.Second }, expectErr: true},
		{description: "zero delay", mutate: func(c *Config) { c.Export.Delay = 0 }},
		{description: "no fallback version", mutate: func(c *Config) { c.Export.FallbackVersion = "" }, expectErr: true},
	}
	for _, testCase := range testCases {
		config := DefaultConfig()
		testCase.mutate(config)
		err := config.Validate()
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}

func TestLoadConfig(t *testing.T) {
	location := filepath.Join(t.TempDir(), "sfreport.yaml")
	err := os.WriteFile(location, []byte(`login:
  domain: test
  username: ada@example.com
http:
  maxRetries: 5
  exportTimeout: 5m
export:
  delay: 1s
history:
  dsn: /tmp/history.db
`), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(context.Background(), location)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "test", config.Login.Domain)
	assert.Equal(t, "ada@example.com", config.Login.Username)
	assert.Equal(t, 5, config.HTTP.MaxRetries)
	assert.Equal(t, 5*time.Minute, config.HTTP.ExportTimeout)
	assert.Equal(t, 30*time.Second, config.HTTP.LoginTimeout)
	assert.Equal(t, time.Second, config.Export.Delay)
	assert.Equal(t, "58.0", config.Export.FallbackVersion)
	assert.Equal(t, "/tmp/history.db", config.History.DSN)
}

func TestLoadConfig_Invalid(t *testing.T) {
	location := filepath.Join(t.TempDir(), "bad.yaml")
	assert.NoError(t, os.WriteFile(location, []byte("http:\n  maxRetries: 0\n"), 0644))
	_, err := LoadConfig(context.Background(), location)
	assert.Error(t, err)

	_, err = LoadConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

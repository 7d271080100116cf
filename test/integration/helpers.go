//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/fivetwenty-io/zefix/pkg/zefixclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	BaseURL  string
	Username string
	Password string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		BaseURL:  os.Getenv("ZEFIX_BASE_URL"),
		Username: os.Getenv("ZEFIX_USERNAME"),
		Password: os.Getenv("ZEFIX_PASSWORD"),
		Verbose:  os.Getenv("ZEFIX_VERBOSE") == "true",
	}
}

// SkipIfNotConfigured skips the test when no credentials are available
func (c *TestConfig) SkipIfNotConfigured(t *testing.T) {
	t.Helper()

	if c.Username == "" || c.Password == "" {
		t.Skip("Integration test credentials not configured. Set ZEFIX_USERNAME and ZEFIX_PASSWORD")
	}
}

// NewClient creates a throttled client against the configured API
func (c *TestConfig) NewClient(t *testing.T) zefix.Client {
	t.Helper()

	config := &zefix.Config{
		BaseURL:  c.BaseURL,
		Auth:     &zefix.BasicAuth{Username: c.Username, Password: c.Password},
		Throttle: &zefix.ThrottleConfig{MinInterval: 500 * time.Millisecond},
	}

	client, err := zefixclient.New(context.Background(), config)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

// Context returns a context bounded for a single integration test
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	return ctx
}

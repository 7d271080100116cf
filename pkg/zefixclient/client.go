// Package zefixclient provides the main entry point for creating ZEFIX API clients.
//
// Quick start
//
//	cli, err := zefixclient.NewWithCredentials(ctx, "", "user", "secret")
//	if err != nil { log.Fatal(err) }
//
//	forms, err := cli.LegalForms().List(ctx)
//
// An empty endpoint selects the production API. Use New with a zefix.Config
// for throttling, retries, logging and metrics.
package zefixclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/zefix/internal/client"
	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
)

// New creates a new ZEFIX API client. It fails with zefix.ErrBrowserEnvironment
// when running in a browser, before config is looked at. config itself is not
// modified.
func New(ctx context.Context, config *zefix.Config) (zefix.Client, error) {
	err := zefix.CheckEnvironment()
	if err != nil {
		return nil, err
	}

	if config == nil {
		return nil, zefix.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	err = normalized.Validate()
	if err != nil {
		return nil, err
	}

	zefixClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return zefixClient, nil
}

// normalizeBaseURL defaults to the production API, trims a trailing slash and
// adds https:// when no scheme is present.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// NewWithEndpoint creates a new client with just an API endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (zefix.Client, error) {
	return New(ctx, &zefix.Config{
		BaseURL: endpoint,
	})
}

// NewWithCredentials creates a new client using Basic authentication.
func NewWithCredentials(ctx context.Context, endpoint, username, password string) (zefix.Client, error) {
	return New(ctx, &zefix.Config{
		BaseURL: endpoint,
		Auth:    &zefix.BasicAuth{Username: username, Password: password},
	})
}

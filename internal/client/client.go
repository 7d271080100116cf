package client

import (
	"errors"
	"time"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/internal/http"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
)

// Client implements the zefix.Client interface.
type Client struct {
	httpClient *http.Client
	gate       *zefix.Gate
	baseURL    string
	logger     zefix.Logger
	metrics    *zefix.Metrics

	// Resource clients
	companies       zefix.CompaniesClient
	legalForms      zefix.LegalFormsClient
	registryOffices zefix.RegistryOfficesClient
	communities     zefix.CommunitiesClient
	sogc            zefix.SOGCClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *zefix.Config, metrics *zefix.Metrics) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	switch {
	case config.HTTPClient != nil:
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	case config.Transport != nil:
		httpOpts = append(httpOpts, http.WithTransport(config.Transport))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	interceptors := zefix.NewInterceptors()
	if metrics != nil {
		interceptors.OnResponse(zefix.MetricsInterceptor(metrics))
	}

	interceptors.Use(config.Interceptors)

	if !interceptors.Empty() {
		httpOpts = append(httpOpts, http.WithInterceptors(interceptors))
	}

	return httpOpts
}

// New creates a new ZEFIX API client. The config is expected to be
// normalized and validated by the caller.
func New(config *zefix.Config) (*Client, error) {
	if config == nil || config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	var metrics *zefix.Metrics
	if config.MetricsRegisterer != nil {
		var err error

		metrics, err = zefix.NewMetrics(config.MetricsRegisterer, config.MetricsClient)
		if err != nil {
			return nil, err
		}
	}

	gateOpts := []zefix.GateOption{zefix.WithGateMetrics(metrics)}
	if config.Logger != nil {
		gateOpts = append(gateOpts, zefix.WithGateLogger(config.Logger))
	}

	gate := zefix.NewGate(config.Auth, config.Throttle, gateOpts...)

	httpClient := http.NewClient(config.BaseURL, gate, createHTTPClientOptions(config, metrics)...)

	client := &Client{
		httpClient: httpClient,
		gate:       gate,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
		metrics:    metrics,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.companies = NewCompaniesClient(c.httpClient)
	c.legalForms = NewLegalFormsClient(c.httpClient)
	c.registryOffices = NewRegistryOfficesClient(c.httpClient)
	c.communities = NewCommunitiesClient(c.httpClient)
	c.sogc = NewSOGCClient(c.httpClient)
}

// Companies implements zefix.Client.Companies.
func (c *Client) Companies() zefix.CompaniesClient {
	return c.companies
}

// LegalForms implements zefix.Client.LegalForms.
func (c *Client) LegalForms() zefix.LegalFormsClient {
	return c.legalForms
}

// RegistryOffices implements zefix.Client.RegistryOffices.
func (c *Client) RegistryOffices() zefix.RegistryOfficesClient {
	return c.registryOffices
}

// Communities implements zefix.Client.Communities.
func (c *Client) Communities() zefix.CommunitiesClient {
	return c.communities
}

// SOGC implements zefix.Client.SOGC.
func (c *Client) SOGC() zefix.SOGCClient {
	return c.sogc
}

// SetCredentials implements zefix.Client.SetCredentials.
func (c *Client) SetCredentials(username, password string) {
	c.gate.SetAuth(&zefix.BasicAuth{Username: username, Password: password})
}

// ClearCredentials implements zefix.Client.ClearCredentials.
func (c *Client) ClearCredentials() {
	c.gate.SetAuth(nil)
}

// SetThrottle implements zefix.Client.SetThrottle.
func (c *Client) SetThrottle(minInterval time.Duration) {
	if minInterval <= 0 {
		c.gate.SetThrottle(nil)

		return
	}

	c.gate.SetThrottle(&zefix.ThrottleConfig{MinInterval: minInterval})
}

// Gate returns the request gate shared by all resource clients.
func (c *Client) Gate() *zefix.Gate {
	return c.gate
}

// Metrics returns the client metrics, nil unless a registerer was configured.
func (c *Client) Metrics() *zefix.Metrics {
	return c.metrics
}

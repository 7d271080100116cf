package zefix

import (
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/prometheus/client_golang/prometheus"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a ZEFIX client.
//
// # Authentication
//
// The ZEFIX public REST API uses HTTP Basic authentication. When Auth carries
// both a username and a password every request is sent with an
// Authorization header; otherwise requests go out unauthenticated and the
// API answers 401 for protected routes. Credentials can be replaced later
// with SetCredentials on the client.
//
// # Throttling
//
// Throttle.MinInterval spaces out the requests of one client: a request is
// held back until MinInterval has passed since the previous one was
// released. Concurrent callers are released one at a time. Each client
// throttles on its own.
//
// # Timeouts and retries
//
// Per-request deadlines should be set on the context passed to client
// methods. RetryMax enables retries of 5xx, 429 and connection errors in the
// transport; it is zero by default. Retries wait at least Throttle.MinInterval.
type Config struct {
	// BaseURL: ZEFIX REST root, e.g. "https://www.zefix.admin.ch/ZefixPublicREST".
	// zefixclient.New uses the production URL when empty, trims a trailing
	// slash and adds "https://" when no scheme is present.
	BaseURL string

	// Auth: optional Basic credentials.
	Auth *BasicAuth
	// Throttle: optional minimum spacing between requests.
	Throttle *ThrottleConfig

	// HTTPClient: custom client used as the transport's underlying client.
	HTTPClient *http.Client
	// Transport: custom round tripper, ignored when HTTPClient is set.
	Transport http.RoundTripper
	// HTTPTimeout: overall timeout of one HTTP exchange, zero keeps the default.
	HTTPTimeout time.Duration

	// RetryMax: maximum number of retries of transient failures. Zero disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// MetricsRegisterer: when set, request and throttle metrics are registered with it.
	MetricsRegisterer prometheus.Registerer
	// MetricsClient: value of the "client" label, DefaultMetricsClient when empty.
	// Clients registering with the same registry and name share their series.
	MetricsClient string

	// Interceptors: optional hooks run on every authorized request and on
	// every final response.
	Interceptors *Interceptors
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}

	err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, is.URL),
		validation.Field(&c.Auth),
		validation.Field(&c.Throttle),
		validation.Field(&c.HTTPTimeout, validation.Min(0)),
		validation.Field(&c.RetryMax, validation.Min(0)),
		validation.Field(&c.RetryWaitMin, validation.Min(0)),
		validation.Field(&c.RetryWaitMax, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Validate checks that the credentials are either complete or absent.
func (a BasicAuth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Username, validation.When(a.Password != "", validation.Required)),
		validation.Field(&a.Password, validation.When(a.Username != "", validation.Required)),
	)
}

// Validate checks that the interval is not negative.
func (t ThrottleConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.MinInterval, validation.Min(0)),
	)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/hashicorp/go-retryablehttp"
)

// Static errors for err113 compliance.
var (
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// Request is a request as issued by the resource clients.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is sent as JSON; []byte is sent as is.
	Body interface{}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests to the ZEFIX API. Every attempt, retries included,
// passes the Gate right before it reaches the wire.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	gate         *zefix.Gate
	interceptors *zefix.Interceptors
	logger       zefix.Logger
	debug        bool
	userAgent    string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger zefix.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug logs every request and response when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection errors.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPClient uses a copy of httpClient as the underlying client. The
// caller's value is never modified.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			copied := *httpClient
			c.httpClient.HTTPClient = &copied
		}
	}
}

// WithTransport replaces the round tripper of the underlying *http.Client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		if transport != nil {
			c.httpClient.HTTPClient.Transport = transport
		}
	}
}

// WithTimeout sets the timeout of one HTTP exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithInterceptors runs interceptors on each authorized request and on each response.
func WithInterceptors(interceptors *zefix.Interceptors) Option {
	return func(c *Client) {
		c.interceptors = interceptors
	}
}

// NewClient creates a client for baseURL. A nil gate sends requests without
// authentication or throttling.
func NewClient(baseURL string, gate *zefix.Gate, opts ...Option) *Client {
	if gate == nil {
		gate = zefix.NewGate(nil, nil)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 0
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		gate:         gate,
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.Backoff = client.backoff
	retryClient.HTTPClient = paced(retryClient.HTTPClient, gate)

	return client
}

// Gate returns the gate of the client.
func (c *Client) Gate() *zefix.Gate {
	return c.gate
}

// backoff never retries sooner than the throttle interval allows.
func (c *Client) backoff(minWait, maxWait time.Duration, attemptNum int, resp *http.Response) time.Duration {
	wait := retryablehttp.DefaultBackoff(minWait, maxWait, attemptNum, resp)
	if floor := c.gate.MinInterval(); wait < floor {
		wait = floor
	}

	return wait
}

// Do sends req and returns the response. Responses with status >= 400 are
// returned together with a *zefix.HTTPError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	outgoing := &zefix.Request{
		Method:  req.Method,
		Path:    req.Path,
		Query:   req.Query,
		Headers: make(http.Header),
		Body:    body,
	}

	outgoing.Headers.Set("Accept", "application/json")
	outgoing.Headers.Set("User-Agent", c.userAgent)

	if body != nil {
		outgoing.Headers.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		outgoing.Headers.Set(key, value)
	}

	decorated := c.gate.Authorize(outgoing)

	err = c.interceptors.BeforeSend(ctx, decorated)
	if err != nil {
		return nil, err
	}

	fullURL, err := c.buildURL(decorated.Path, decorated.Query)
	if err != nil {
		return nil, err
	}

	var rawBody interface{}
	if len(decorated.Body) > 0 {
		rawBody = decorated.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(withAttempts(ctx), decorated.Method, fullURL.String(), rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = decorated.Headers.Clone()

	// Nothing may fail between the dispatch and the send.
	err = c.gate.Dispatch(ctx, decorated)
	if err != nil {
		return nil, fmt.Errorf("waiting for request gate: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": decorated.Method,
			"url":    fullURL.Redacted(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	intercepted := &zefix.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		errBody := respBody
		if len(errBody) > constants.MaxErrorBodySize {
			errBody = errBody[:constants.MaxErrorBodySize]
		}

		intercepted.Error = zefix.NewHTTPError(httpResp.StatusCode, decorated.Method, fullURL.Redacted(), decorated, errBody)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      decorated.Method,
			"url":         fullURL.Redacted(),
			"status_code": httpResp.StatusCode,
			"size":        len(respBody),
		})
	}

	err = c.interceptors.AfterReceive(ctx, decorated, intercepted)
	if err != nil {
		return response, err
	}

	if intercepted.Error != nil {
		return response, intercepted.Error
	}

	return response, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

func (c *Client) buildURL(path string, query url.Values) (*url.URL, error) {
	fullURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if len(query) > 0 {
		fullURL.RawQuery = query.Encode()
	}

	return fullURL, nil
}

func encodeBody(body interface{}) ([]byte, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return typed, nil
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return encoded, nil
	}
}

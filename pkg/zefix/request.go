package zefix

import (
	"bytes"
	"maps"
	"net/http"
	"net/url"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-ID"

// Metadata keys set on decorated requests.
const (
	// MetadataDispatchedAt holds the time.Time at which the Gate released the request.
	MetadataDispatchedAt = "dispatched_at"
	// MetadataThrottleWait holds the time.Duration the Gate waited before release.
	MetadataThrottleWait = "throttle_wait"
	// MetadataRequestID holds the X-Request-ID assigned by RequestIDInterceptor.
	MetadataRequestID = "request_id"
)

// Request represents an HTTP request on its way to the transport.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response represents an HTTP response that can be intercepted.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// Clone returns a deep copy of the request. Mutating the copy never affects r.
func (r *Request) Clone() *Request {
	if r == nil {
		return &Request{Headers: make(http.Header)}
	}

	clone := &Request{
		Method:  r.Method,
		Path:    r.Path,
		Headers: r.Headers.Clone(),
		Body:    bytes.Clone(r.Body),
	}

	if clone.Headers == nil {
		clone.Headers = make(http.Header)
	}

	if r.Query != nil {
		clone.Query = url.Values(http.Header(r.Query).Clone())
	}

	if r.Metadata != nil {
		clone.Metadata = maps.Clone(r.Metadata)
	}

	return clone
}

func (r *Request) setMetadata(key string, value interface{}) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]interface{})
	}

	r.Metadata[key] = value
}

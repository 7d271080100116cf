package zefix

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestInterceptor runs on an authorized request before the Gate paces it.
// It may change headers, query or metadata. An error aborts the request
// before it counts as a dispatch.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor runs once per request on the final response, after
// retries. resp.Error is set for statuses >= 400.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// Interceptors is an ordered set of hooks around every ZEFIX exchange. A nil
// *Interceptors runs nothing. Build it before handing it to a client; it is
// not safe to add hooks while requests are running.
type Interceptors struct {
	onRequest  []RequestInterceptor
	onResponse []ResponseInterceptor
}

// NewInterceptors returns an empty set.
func NewInterceptors() *Interceptors {
	return &Interceptors{}
}

// OnRequest appends request hooks and returns i.
func (i *Interceptors) OnRequest(hooks ...RequestInterceptor) *Interceptors {
	i.onRequest = append(i.onRequest, hooks...)

	return i
}

// OnResponse appends response hooks and returns i.
func (i *Interceptors) OnResponse(hooks ...ResponseInterceptor) *Interceptors {
	i.onResponse = append(i.onResponse, hooks...)

	return i
}

// Use appends the hooks of other after those of i and returns i.
func (i *Interceptors) Use(other *Interceptors) *Interceptors {
	if other != nil {
		i.onRequest = append(i.onRequest, other.onRequest...)
		i.onResponse = append(i.onResponse, other.onResponse...)
	}

	return i
}

// Empty reports whether i holds no hooks.
func (i *Interceptors) Empty() bool {
	return i == nil || len(i.onRequest)+len(i.onResponse) == 0
}

// BeforeSend runs the request hooks in order and stops at the first error.
func (i *Interceptors) BeforeSend(ctx context.Context, req *Request) error {
	if i == nil {
		return nil
	}

	for _, hook := range i.onRequest {
		if err := hook(ctx, req); err != nil {
			return fmt.Errorf("request interceptor: %w", err)
		}
	}

	return nil
}

// AfterReceive runs the response hooks in order and stops at the first error.
func (i *Interceptors) AfterReceive(ctx context.Context, req *Request, resp *Response) error {
	if i == nil {
		return nil
	}

	for _, hook := range i.onResponse {
		if err := hook(ctx, req, resp); err != nil {
			return fmt.Errorf("response interceptor: %w", err)
		}
	}

	return nil
}

// RequestIDInterceptor tags each request with an X-Request-ID, a random UUID
// unless the caller set one, and copies it to MetadataRequestID.
func RequestIDInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		id := req.Headers.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			req.Headers.Set(HeaderRequestID, id)
		}

		req.setMetadata(MetadataRequestID, id)

		return nil
	}
}

// HeaderInterceptor sets fixed headers, e.g. Accept-Language. It never
// touches Authorization, which belongs to the Gate.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			if http.CanonicalHeaderKey(key) == "Authorization" {
				continue
			}

			req.Headers.Set(key, value)
		}

		return nil
	}
}

// TraceInterceptors logs each request and its outcome with the request id,
// the throttle wait and the time since dispatch. Header values and bodies
// are never logged.
func TraceInterceptors(logger Logger) *Interceptors {
	return NewInterceptors().
		OnRequest(func(ctx context.Context, req *Request) error {
			logger.Debug("Sending request", traceFields(req))

			return nil
		}).
		OnResponse(func(ctx context.Context, req *Request, resp *Response) error {
			fields := traceFields(req)
			fields["status_code"] = resp.StatusCode

			if wait, ok := req.Metadata[MetadataThrottleWait].(time.Duration); ok {
				fields["throttle_wait"] = wait.String()
			}

			if dispatchedAt, ok := req.Metadata[MetadataDispatchedAt].(time.Time); ok {
				fields["elapsed"] = time.Since(dispatchedAt).Round(time.Millisecond).String()
			}

			if resp.Error != nil {
				fields["error"] = resp.Error.Error()
				logger.Error("Request failed", fields)

				return nil
			}

			logger.Debug("Received response", fields)

			return nil
		})
}

func traceFields(req *Request) map[string]interface{} {
	fields := map[string]interface{}{
		"method": req.Method,
		"path":   req.Path,
	}

	if id, ok := req.Metadata[MetadataRequestID]; ok {
		fields["request_id"] = id
	}

	return fields
}

// MetricsInterceptor counts final responses by method and status code.
func MetricsInterceptor(metrics *Metrics) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		metrics.observeResponse(req.Method, resp.StatusCode)

		return nil
	}
}

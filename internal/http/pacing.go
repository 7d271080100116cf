package http

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
)

type attemptsKey struct{}

// withAttempts marks ctx as belonging to a request whose first attempt was
// already released by the gate.
func withAttempts(ctx context.Context) context.Context {
	return context.WithValue(ctx, attemptsKey{}, new(atomic.Int32))
}

// pacedTransport passes every retry through the gate, so retries count as
// dispatches and keep the minimum interval to all other requests.
type pacedTransport struct {
	base http.RoundTripper
	gate *zefix.Gate
}

func (t *pacedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	attempts, _ := req.Context().Value(attemptsKey{}).(*atomic.Int32)

	// The first attempt of a request sent through Client.Do is paced there.
	if attempts == nil || attempts.Add(1) > 1 {
		_, _, err := t.gate.Wait(req.Context())
		if err != nil {
			if req.Body != nil {
				_ = req.Body.Close()
			}

			return nil, fmt.Errorf("waiting for request gate: %w", err)
		}
	}

	return t.base.RoundTrip(req)
}

// paced returns a copy of httpClient whose transport passes the gate before
// every retry.
func paced(httpClient *http.Client, gate *zefix.Gate) *http.Client {
	pacedClient := *httpClient

	base := pacedClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	pacedClient.Transport = &pacedTransport{base: base, gate: gate}

	return &pacedClient
}

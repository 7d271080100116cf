package zefix

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// BasicAuth holds HTTP Basic credentials. Both fields must be non-empty for
// the Gate to send an Authorization header.
type BasicAuth struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"-"        yaml:"-"`
}

func (a *BasicAuth) usable() bool {
	return a != nil && a.Username != "" && a.Password != ""
}

// header returns the Authorization header value for the credentials.
func (a *BasicAuth) header() string {
	return "Basic " + ToBase64(a.Username+":"+a.Password)
}

// ThrottleConfig sets the minimum spacing between two requests of one client.
// A zero MinInterval disables throttling.
type ThrottleConfig struct {
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval"`
}

// ToBase64 encodes the UTF-8 bytes of text with standard base64.
func ToBase64(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

func decodeBase64(encoded string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding base64: %w", err)
	}

	return string(decoded), nil
}

// Clock is the time source of a Gate.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock Clock) GateOption {
	return func(g *Gate) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// WithGateLogger logs throttle waits at debug level.
func WithGateLogger(logger Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithGateMetrics records throttle waits and cancellations.
func WithGateMetrics(metrics *Metrics) GateOption {
	return func(g *Gate) {
		g.metrics = metrics
	}
}

// Gate decorates outgoing requests with Basic authentication and enforces
// the minimum interval between two dispatches. Each client owns one Gate;
// two gates never share throttle state.
//
// Reading the last dispatch time, waiting and recording the new dispatch time
// happen while holding a single slot, so concurrent callers are released one
// at a time and always at least MinInterval apart.
type Gate struct {
	auth     atomic.Pointer[BasicAuth]
	throttle atomic.Pointer[ThrottleConfig]

	slot chan struct{}

	mu           sync.Mutex
	lastDispatch time.Time
	dispatched   bool

	clock   Clock
	logger  Logger
	metrics *Metrics
}

// NewGate creates a gate. Nil auth or throttle disables the respective step.
func NewGate(auth *BasicAuth, throttle *ThrottleConfig, opts ...GateOption) *Gate {
	gate := &Gate{
		slot:  make(chan struct{}, 1),
		clock: SystemClock{},
	}

	for _, opt := range opts {
		opt(gate)
	}

	gate.SetAuth(auth)
	gate.SetThrottle(throttle)

	return gate
}

// SetAuth replaces the credentials. The pair is swapped as one value so a
// concurrent request sees either the old or the new pair, never a mix.
func (g *Gate) SetAuth(auth *BasicAuth) {
	if auth == nil {
		g.auth.Store(nil)

		return
	}

	creds := *auth
	g.auth.Store(&creds)
}

// SetThrottle replaces the throttle configuration.
func (g *Gate) SetThrottle(throttle *ThrottleConfig) {
	if throttle == nil {
		g.throttle.Store(nil)

		return
	}

	cfg := *throttle
	g.throttle.Store(&cfg)
}

// Auth returns a copy of the current credentials, or nil.
func (g *Gate) Auth() *BasicAuth {
	auth := g.auth.Load()
	if auth == nil {
		return nil
	}

	creds := *auth

	return &creds
}

// MinInterval returns the configured minimum interval, zero when throttling is off.
func (g *Gate) MinInterval() time.Duration {
	throttle := g.throttle.Load()
	if throttle == nil || throttle.MinInterval < 0 {
		return 0
	}

	return throttle.MinInterval
}

// LastDispatch returns the time of the most recent throttled dispatch. The
// boolean is false while no request has been dispatched through the gate.
func (g *Gate) LastDispatch() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.lastDispatch, g.dispatched
}

// Decorate returns a copy of req carrying the Authorization header, after
// waiting for the throttle interval if needed. req itself is not modified.
// If ctx is done while waiting, Decorate returns ctx.Err() and the wait does
// not count as a dispatch.
func (g *Gate) Decorate(ctx context.Context, req *Request) (*Request, error) {
	decorated := g.Authorize(req)

	err := g.Dispatch(ctx, decorated)
	if err != nil {
		return nil, err
	}

	return decorated, nil
}

// Dispatch waits like Wait and records the dispatch time and the throttle
// wait in req's metadata. It does not clone req.
func (g *Gate) Dispatch(ctx context.Context, req *Request) error {
	dispatchedAt, waited, err := g.Wait(ctx)
	if err != nil {
		return err
	}

	req.setMetadata(MetadataDispatchedAt, dispatchedAt)

	if g.MinInterval() > 0 {
		req.setMetadata(MetadataThrottleWait, waited)
	}

	return nil
}

// Authorize returns a copy of req carrying the Authorization header of the
// current credentials. It never waits. Without usable credentials the
// caller's headers are kept as they are.
func (g *Gate) Authorize(req *Request) *Request {
	authorized := req.Clone()

	if auth := g.auth.Load(); auth.usable() {
		authorized.Headers.Set("Authorization", auth.header())
	}

	return authorized
}

// Wait blocks until the throttle interval has passed since the last dispatch
// and records the returned time as the new last dispatch. Call it once per
// request put on the wire, retries included. With throttling disabled it
// returns immediately and records nothing.
func (g *Gate) Wait(ctx context.Context) (time.Time, time.Duration, error) {
	interval := g.MinInterval()
	if interval <= 0 {
		return g.clock.Now(), 0, nil
	}

	dispatchedAt, waited, err := g.await(ctx, interval)
	if err != nil {
		g.metrics.throttleCancelled()

		return time.Time{}, 0, err
	}

	if waited > 0 {
		g.metrics.observeThrottleWait(waited)

		if g.logger != nil {
			g.logger.Debug("Throttled request", map[string]interface{}{
				"waited": waited.String(),
			})
		}
	}

	return dispatchedAt, waited, nil
}

// await holds the slot across read, wait and write of the dispatch time.
func (g *Gate) await(ctx context.Context, interval time.Duration) (time.Time, time.Duration, error) {
	select {
	case g.slot <- struct{}{}:
	case <-ctx.Done():
		return time.Time{}, 0, ctx.Err()
	}
	defer func() { <-g.slot }()

	last, dispatched := g.LastDispatch()

	var wait time.Duration
	if dispatched {
		elapsed := g.clock.Now().Sub(last)
		if elapsed < interval {
			wait = interval - elapsed
		}
	}

	if wait > 0 {
		err := g.clock.Sleep(ctx, wait)
		if err != nil {
			return time.Time{}, 0, err
		}
	} else if err := ctx.Err(); err != nil {
		return time.Time{}, 0, err
	}

	now := g.clock.Now()

	g.mu.Lock()
	g.lastDispatch = now
	g.dispatched = true
	g.mu.Unlock()

	return now, wait, nil
}

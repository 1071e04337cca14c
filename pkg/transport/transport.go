package transport

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Options configures a Transport. All fields are copied at construction;
// the Transport never mutates or exposes them afterwards.
type Options struct {
	// Endpoint is the validated absolute base URL of the service.
	Endpoint *url.URL

	// AuthToken is the opaque bearer credential. Held by the auth stage
	// only; never logged.
	AuthToken string

	UserAgent string

	// MaxRetries is the number of re-sends after the first attempt of an
	// idempotent request.
	MaxRetries int

	BackoffBase       time.Duration
	BackoffMultiplier float64
	BackoffMaxDelay   time.Duration

	// RetryStatuses are the HTTP statuses retried for idempotent requests.
	RetryStatuses []int

	// RequestTimeout bounds each individual attempt.
	RequestTimeout time.Duration

	// ConnectTimeout bounds dialing a new connection.
	ConnectTimeout time.Duration

	// OverallTimeout, when non-zero, bounds the whole retried call
	// including backoff waits.
	OverallTimeout time.Duration

	Logger  *zap.Logger
	Tracing bool
	Metrics prometheus.Registerer
}

// Transport executes RequestDescriptors through the middleware pipeline
// over one shared connection pool. Safe for concurrent use.
type Transport struct {
	pipeline http.RoundTripper
	pool     *http.Transport
	endpoint *url.URL
	overall  time.Duration
}

// New assembles the pipeline: auth, then retry, then trace, over a pooled
// http.Transport.
func New(opts Options) *Transport {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pool := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
	}

	statuses := make(map[int]bool, len(opts.RetryStatuses))
	for _, s := range opts.RetryStatuses {
		statuses[s] = true
	}

	pipeline := Chain(pool,
		newAuthStage(opts.AuthToken, opts.UserAgent),
		&retryStage{
			maxRetries:     opts.MaxRetries,
			base:           opts.BackoffBase,
			multiplier:     opts.BackoffMultiplier,
			maxDelay:       opts.BackoffMaxDelay,
			retryStatuses:  statuses,
			attemptTimeout: opts.RequestTimeout,
			logger:         logger,
		},
		newTraceStage(opts.Tracing, logger, newRequestMetrics(opts.Metrics)),
	)

	return &Transport{
		pipeline: pipeline,
		pool:     pool,
		endpoint: opts.Endpoint,
		overall:  opts.OverallTimeout,
	}
}

// Execute sends one request built from the descriptor and returns the raw
// response. The caller owns the response body. Errors are ConnectionError,
// TimeoutError or RetriesExhaustedError; non-2xx responses are not errors
// at this layer.
func (t *Transport) Execute(ctx context.Context, d Descriptor) (*http.Response, error) {
	var cancel context.CancelFunc
	if t.overall > 0 {
		ctx, cancel = context.WithTimeout(ctx, t.overall)
	}
	if d.Idempotent {
		ctx = withIdempotent(ctx)
	}

	u := *t.endpoint
	u.Path = joinPath(u.Path, d.Path)
	u.RawQuery = d.Query

	var body *bytes.Reader
	if d.Body != nil {
		body = bytes.NewReader(d.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, u.String(), body)
	if err != nil {
		if cancel != nil {
			cancel()
		}
		return nil, &ConnectionError{Path: d.Path, Err: err}
	}
	if d.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.pipeline.RoundTrip(req)
	if err != nil {
		if cancel != nil {
			cancel()
		}
		return nil, err
	}
	if cancel != nil {
		// The overall deadline must outlive body reading, so it is released
		// by the body's Close rather than before returning.
		resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	}
	return resp, nil
}

// CloseIdleConnections drops pooled connections. In-flight requests are
// unaffected.
func (t *Transport) CloseIdleConnections() {
	t.pool.CloseIdleConnections()
}

func joinPath(base, path string) string {
	if base == "" || base == "/" {
		return path
	}
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + path
}

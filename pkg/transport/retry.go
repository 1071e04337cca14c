package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type idempotentKey struct{}

// withIdempotent marks the request safe to retry. Methods that are
// idempotent by definition (GET, HEAD, PUT, DELETE) are retried regardless;
// this marker opts in POSTs whose operation guarantees the same net effect
// on repeat.
func withIdempotent(ctx context.Context) context.Context {
	return context.WithValue(ctx, idempotentKey{}, true)
}

func isIdempotent(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	marked, _ := req.Context().Value(idempotentKey{}).(bool)
	return marked
}

// retryStage re-sends idempotent requests that failed at the transport
// level or came back with a retryable status, waiting an exponentially
// growing, jittered delay between attempts. Only one attempt is ever in
// flight at a time. Non-idempotent requests get exactly one attempt.
type retryStage struct {
	maxRetries     int
	base           time.Duration
	multiplier     float64
	maxDelay       time.Duration
	retryStatuses  map[int]bool
	attemptTimeout time.Duration
	logger         *zap.Logger
}

func (s *retryStage) newBackOff() *backoff.ExponentialBackOff {
	bo := &backoff.ExponentialBackOff{
		InitialInterval:     s.base,
		RandomizationFactor: 0.5,
		Multiplier:          s.multiplier,
		MaxInterval:         s.maxDelay,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	bo.Reset()
	return bo
}

func (s *retryStage) RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	ctx := req.Context()
	path := req.URL.Path

	maxAttempts := 1
	if isIdempotent(req) {
		maxAttempts += s.maxRetries
	}

	bo := s.newBackOff()
	var lastErr error

	for attempt := 1; ; attempt++ {
		resp, err := s.attempt(req, next)

		if err == nil && !s.retryStatuses[resp.StatusCode] {
			return resp, nil
		}

		if err == nil {
			// Retryable status. The final attempt's response is returned as
			// is so the caller sees the service's own error verbatim.
			if attempt == maxAttempts {
				return resp, nil
			}
			s.logger.Debug("vortex: retrying after retryable status",
				zap.String("method", req.Method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode))
			drain(resp)
		} else {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			lastErr = classify(path, err)
			if ctx.Err() != nil {
				// The caller's deadline or cancellation, not the attempt's.
				return nil, lastErr
			}
			if attempt == maxAttempts {
				if maxAttempts == 1 {
					return nil, lastErr
				}
				return nil, &RetriesExhaustedError{Path: path, Attempts: attempt, Err: lastErr}
			}
			s.logger.Debug("vortex: retrying after transport failure",
				zap.String("method", req.Method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
		}

		delay := bo.NextBackOff()
		if delay > s.maxDelay {
			delay = s.maxDelay
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			// Abandoned mid-backoff; never retried past this point.
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// attempt sends one clone of the request, applying the per-attempt timeout.
// On success the timeout's cancel is tied to the response body so reading
// the body is not cut short.
func (s *retryStage) attempt(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	ctx := req.Context()
	var cancel context.CancelFunc
	if s.attemptTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.attemptTimeout)
	}

	attemptReq := req.Clone(ctx)
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			if cancel != nil {
				cancel()
			}
			return nil, err
		}
		attemptReq.Body = body
	}

	resp, err := next.RoundTrip(attemptReq)
	if err != nil {
		if cancel != nil {
			cancel()
		}
		return nil, err
	}
	if cancel != nil {
		resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	}
	return resp, nil
}

// cancelOnClose releases an attempt's timeout context once the caller is
// done with the body, so an abandoned call cannot leak its connection.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

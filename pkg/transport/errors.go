package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ConnectionError reports a request that never produced a response because
// the connection failed (refused, reset, DNS failure).
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("vortex: %s: connection failed: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError reports an attempt that exceeded its deadline.
type TimeoutError struct {
	Path string
	Err  error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("vortex: %s: timeout: %v", e.Path, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// RetriesExhaustedError reports that every allowed attempt of an idempotent
// request failed. It carries the attempt count and the last observed failure.
type RetriesExhaustedError struct {
	Path     string
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("vortex: %s: retries exhausted after %d attempts: %v", e.Path, e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error { return e.Err }

// classify wraps a raw transport failure into the package's error taxonomy.
// Context cancellation and deadline errors from the caller pass through
// untouched so errors.Is(err, context.Canceled) keeps working.
func classify(path string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Path: path, Err: err}
	}
	return &ConnectionError{Path: path, Err: err}
}

package vortex

import (
	"errors"
	"fmt"

	"github.com/vortexdb/vortex-go/pkg/api"
	"github.com/vortexdb/vortex-go/pkg/transport"
)

// ConfigErrorKind classifies an invalid construction input.
type ConfigErrorKind int

const (
	// MissingField means a required configuration field was empty.
	MissingField ConfigErrorKind = iota
	// InvalidEndpoint means the endpoint did not parse as an absolute URL.
	InvalidEndpoint
)

// ConfigError reports invalid construction input. It is fatal, surfaced
// immediately and never retried.
type ConfigError struct {
	Kind   ConfigErrorKind
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vortex: invalid config: %s: %s", e.Field, e.Reason)
}

// AsServiceError extracts the *api.ServiceError from err, if the service
// understood and rejected the request.
func AsServiceError(err error) (*api.ServiceError, bool) {
	var serr *api.ServiceError
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}

// IsRetriesExhausted reports whether err means every allowed attempt of an
// idempotent request failed at the transport level.
func IsRetriesExhausted(err error) bool {
	var rerr *transport.RetriesExhaustedError
	return errors.As(err, &rerr)
}

// IsTimeout reports whether err was a per-attempt or overall deadline.
func IsTimeout(err error) bool {
	var terr *transport.TimeoutError
	return errors.As(err, &terr)
}

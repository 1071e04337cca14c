package vortex

import "github.com/vortexdb/vortex-go/pkg/api"

// CreateOption adjusts how a create operation handles conflicts.
type CreateOption func(*createOptions)

type createOptions struct {
	ifNotExists bool
}

// WithIfNotExists makes the create succeed when the resource already exists.
// The request becomes safe to retry, and an ALREADY_EXIST response from the
// service is treated as success.
func WithIfNotExists() CreateOption {
	return func(o *createOptions) { o.ifNotExists = true }
}

func applyCreateOptions(opts []CreateOption) createOptions {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DropOption adjusts how a drop operation handles a missing resource.
type DropOption func(*dropOptions)

type dropOptions struct {
	ignoreMissing bool
}

// WithIgnoreMissing makes the drop succeed when the resource does not exist,
// treating it as already deleted.
func WithIgnoreMissing() DropOption {
	return func(o *dropOptions) { o.ignoreMissing = true }
}

func applyDropOptions(opts []DropOption) dropOptions {
	var o dropOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// swallowCode returns nil when err is a service error with the given code,
// leaving every other error untouched.
func swallowCode(err error, code api.ServerCode) error {
	if serr, ok := AsServiceError(err); ok && serr.IsCode(code) {
		return nil
	}
	return err
}

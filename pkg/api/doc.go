// Package api holds the wire-level value types exchanged with the Vortex
// service: request argument structs, response bodies, enum vocabularies,
// and the service error envelope.
//
// All types are plain JSON-tagged values mirrored from and to the service;
// the client keeps no authoritative copy of any of them. Request args that
// have locally verifiable invariants expose a Validate method returning a
// *ValidationError; everything deeper is validated by the service.
//
// Row payloads are caller-defined: any JSON-marshalable struct or
// map[string]any can be inserted, and responses hand rows back as
// json.RawMessage with DecodeRow/DecodeRows helpers, so applications choose
// their own row types without the SDK imposing a schema.
package api

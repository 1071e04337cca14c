// Package codec serializes request bodies to the wire format and maps
// responses back to typed values or structured errors.
//
// Decode never panics on unexpected but well-formed JSON: a success body
// that does not fit the expected shape becomes a *DecodingError, and a
// failure body whose error envelope is malformed becomes a generic
// *api.ServiceError carrying the raw status and body.
package codec

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/vortexdb/vortex-go/pkg/api"
)

// EncodingError reports a request body that could not be serialized. This
// is a programmer error (non-marshalable value) and is never retried.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("vortex: encode request body: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// DecodingErrorKind classifies why a success response could not be decoded.
type DecodingErrorKind int

const (
	// SchemaMismatch means the body was JSON but did not fit the expected
	// response type.
	SchemaMismatch DecodingErrorKind = iota
)

// DecodingError reports a success response whose body did not match the
// expected shape. Retrying will not fix it, so it is surfaced as is.
type DecodingError struct {
	Kind DecodingErrorKind
	Err  error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("vortex: decode response body: %v", e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// Encode serializes a typed request body to JSON.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return data, nil
}

// maxRawBodyLen caps how much of an undecodable error body is carried in
// the resulting ServiceError message.
const maxRawBodyLen = 512

// Decode maps a response to out or to a structured error. A 2xx status
// with a zero envelope code deserializes body into out; a nonzero envelope
// code or any other status becomes a *api.ServiceError, falling back to a
// generic ServiceError with the raw body when the envelope itself is
// malformed.
func Decode(status int, requestID string, body []byte, out any) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		// A 2xx body still carries the {code,msg} envelope; a nonzero code
		// is a rejection even when the HTTP layer reports success.
		var envelope api.CommonResponse
		if json.Unmarshal(body, &envelope) == nil && envelope.Code != 0 {
			return &api.ServiceError{
				HTTPStatus: status,
				RequestID:  requestID,
				Code:       api.ServerCode(envelope.Code),
				Message:    envelope.Msg,
			}
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return &DecodingError{Kind: SchemaMismatch, Err: err}
		}
		return nil
	}

	var envelope api.CommonResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Msg == "" && envelope.Code == 0 {
		return &api.ServiceError{
			HTTPStatus: status,
			RequestID:  requestID,
			Code:       api.ServerCodeUnknown,
			Message:    truncate(string(body)),
		}
	}
	return &api.ServiceError{
		HTTPStatus: status,
		RequestID:  requestID,
		Code:       api.ServerCode(envelope.Code),
		Message:    envelope.Msg,
	}
}

func truncate(s string) string {
	if len(s) <= maxRawBodyLen {
		return s
	}
	cut := maxRawBodyLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

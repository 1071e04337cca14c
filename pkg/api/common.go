package api

import "fmt"

// CommonResponse is the envelope every service response carries. Code 0
// means success; any other value is a ServerCode.
type CommonResponse struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
}

// ServerCode is a service-reported error code.
type ServerCode int32

const (
	ServerCodeUnknown          ServerCode = 0
	ServerCodeInternalError    ServerCode = 1
	ServerCodeInvalidParameter ServerCode = 2

	ServerCodeInvalidHTTPURL      ServerCode = 10
	ServerCodeInvalidHTTPHeader   ServerCode = 11
	ServerCodeInvalidHTTPBody     ServerCode = 12
	ServerCodeMissSSLCertificates ServerCode = 13

	ServerCodeUserNotExist         ServerCode = 20
	ServerCodeUserAlreadyExist     ServerCode = 21
	ServerCodeRoleNotExist         ServerCode = 22
	ServerCodeRoleAlreadyExist     ServerCode = 23
	ServerCodeAuthenticationFailed ServerCode = 24
	ServerCodePermissionDenied     ServerCode = 25

	ServerCodeDBNotExist      ServerCode = 50
	ServerCodeDBAlreadyExist  ServerCode = 51
	ServerCodeDBTooManyTables ServerCode = 52
	ServerCodeDBNotEmpty      ServerCode = 53

	ServerCodeInvalidTableSchema         ServerCode = 60
	ServerCodeInvalidPartitionParameters ServerCode = 61
	ServerCodeTableTooManyFields         ServerCode = 62
	ServerCodeTableTooManyFamilies       ServerCode = 63
	ServerCodeTableTooManyPrimaryKeys    ServerCode = 64
	ServerCodeTableTooManyPartitionKeys  ServerCode = 65
	ServerCodeTableTooManyVectorFields   ServerCode = 66
	ServerCodeTableTooManyIndexes        ServerCode = 67
	ServerCodeDynamicSchemaError         ServerCode = 68
	ServerCodeTableNotExist              ServerCode = 69
	ServerCodeTableAlreadyExist          ServerCode = 70
	ServerCodeInvalidTableState          ServerCode = 71
	ServerCodeTableNotReady              ServerCode = 72
	ServerCodeAliasNotExist              ServerCode = 73
	ServerCodeAliasAlreadyExist          ServerCode = 74

	ServerCodeFieldNotExist       ServerCode = 80
	ServerCodeFieldAlreadyExist   ServerCode = 81
	ServerCodeVectorFieldNotExist ServerCode = 82

	ServerCodeInvalidIndexSchema ServerCode = 90
	ServerCodeIndexNotExist      ServerCode = 91
	ServerCodeIndexAlreadyExist  ServerCode = 92
	ServerCodeIndexDuplicated    ServerCode = 93
	ServerCodeInvalidIndexState  ServerCode = 94

	ServerCodePrimaryKeyDuplicated ServerCode = 100
	ServerCodeRowKeyNotFound       ServerCode = 101
)

// ServiceError is returned when the service understood a request and
// rejected it. It carries the service's error envelope verbatim together
// with the HTTP status and the Request-ID response header.
type ServiceError struct {
	// HTTPStatus is the raw HTTP status code of the response.
	HTTPStatus int
	// RequestID is the service-assigned id of the failed request, if any.
	RequestID string
	// Code is the service error code from the response envelope.
	// ServerCodeUnknown when the envelope itself was malformed.
	Code ServerCode
	// Message is the service error message, or the raw response body when
	// the envelope could not be decoded.
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("vortex: service error: status=%d code=%d request_id=%q msg=%q",
		e.HTTPStatus, e.Code, e.RequestID, e.Message)
}

// IsCode reports whether the service rejected the request with the given code.
func (e *ServiceError) IsCode(code ServerCode) bool {
	return e != nil && e.Code == code
}

// ValidationError reports a request argument the client rejected locally,
// before any network call was made.
type ValidationError struct {
	Op     string // the operation being built, e.g. "CreateIndexes"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("vortex: %s: invalid arguments: %s", e.Op, e.Reason)
}

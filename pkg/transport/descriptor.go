package transport

// Descriptor describes one HTTP call to the service. It is created per
// operation, consumed by Execute exactly once, and not retained.
type Descriptor struct {
	// Method is the HTTP method, usually POST or DELETE.
	Method string

	// Path is the endpoint-relative path, e.g. "/v1/database".
	Path string

	// Query is the raw query string carrying the operation verb,
	// e.g. "create" or "list". Empty for verb-less calls.
	Query string

	// Body is the already-encoded JSON request body, or nil.
	Body []byte

	// Idempotent marks the call safe to retry. Reads and deletes are
	// idempotent; mutating writes are only when the operation guarantees
	// the same net effect on repeat (upsert, create-if-not-exists).
	Idempotent bool
}

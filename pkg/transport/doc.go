// Package transport executes HTTP requests built from RequestDescriptors
// through an ordered middleware chain: auth injection, retry with
// exponential backoff and jitter, and an optional tracing/metrics stage,
// all layered over a shared pooled http.Transport.
//
// Middleware order is fixed. Auth runs outermost so every retry attempt
// carries credentials; the trace stage runs innermost so every individual
// attempt is observed. Retries happen only for idempotent requests and only
// on transport-level failures or a configurable set of retryable statuses.
//
// The connection pool is owned by one Transport instance and shared by all
// in-flight requests; it is safe for concurrent use without external
// locking. Callers abandon a request by cancelling its context, which stops
// retrying immediately, even mid-backoff.
package transport

package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader carries a client-generated id so a failed call can be
// correlated with service-side logs even when the service assigns no id.
const requestIDHeader = "Request-Id"

// authStage attaches the bearer token, user agent and a request id to every
// outbound request. It runs outermost so each retry attempt is authenticated.
// The token is a credential; it must never be logged or echoed in errors,
// which is why this stage holds it as an opaque string and nothing else
// reads it.
type authStage struct {
	token     string
	userAgent string
}

func newAuthStage(token, userAgent string) *authStage {
	return &authStage{token: token, userAgent: userAgent}
}

func (s *authStage) RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}
	return next.RoundTrip(req)
}

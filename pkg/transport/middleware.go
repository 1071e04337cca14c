package transport

import "net/http"

// Middleware is one stage of the request pipeline. It receives the request
// and the next stage, and must either delegate to next or fail; it must not
// retain the request after returning.
type Middleware interface {
	RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error)
}

type stage struct {
	mw   Middleware
	next http.RoundTripper
}

func (s stage) RoundTrip(req *http.Request) (*http.Response, error) {
	return s.mw.RoundTrip(req, s.next)
}

// Chain composes middlewares around a base RoundTripper. The first
// middleware is outermost: Chain(base, a, b) runs a, then b, then base.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = stage{mw: mws[i], next: rt}
	}
	return rt
}

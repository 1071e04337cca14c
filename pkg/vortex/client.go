package vortex

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vortexdb/vortex-go/pkg/codec"
	"github.com/vortexdb/vortex-go/pkg/transport"
)

// Client is the entry point to the Vortex HTTP API. It validates its config
// once, owns a pooled transport, and exposes one method per service
// operation. Safe for concurrent use; create one per process and share it.
type Client struct {
	cfg   Config
	creds *Credentials
	tr    *transport.Transport
}

// NewClient validates cfg, derives the auth credentials, and builds the
// transport pipeline. The config is copied; later mutation of cfg has no
// effect on the client.
func NewClient(cfg *Config) (*Client, error) {
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("vortex: invalid config: %w", err)
	}
	creds, err := NewCredentials(c.Account, c.APIKey)
	if err != nil {
		return nil, fmt.Errorf("vortex: invalid config: %w", err)
	}
	endpoint, err := c.endpointURL()
	if err != nil {
		return nil, fmt.Errorf("vortex: invalid config: %w", &ConfigError{
			Kind: InvalidEndpoint, Field: "endpoint", Reason: "must be a valid absolute URL",
		})
	}

	tr := transport.New(transport.Options{
		Endpoint:          endpoint,
		AuthToken:         creds.token,
		UserAgent:         c.UserAgent,
		MaxRetries:        c.MaxRetries,
		BackoffBase:       c.BackoffBase,
		BackoffMultiplier: c.BackoffMultiplier,
		BackoffMaxDelay:   c.BackoffMaxDelay,
		RetryStatuses:     c.RetryStatuses,
		RequestTimeout:    c.RequestTimeout,
		ConnectTimeout:    c.ConnectTimeout,
		OverallTimeout:    c.OverallTimeout,
		Logger:            c.Logger,
		Tracing:           c.Tracing,
		Metrics:           c.Metrics,
	})
	return &Client{cfg: c, creds: creds, tr: tr}, nil
}

// Account returns the account name the client authenticates as.
func (c *Client) Account() string { return c.creds.Account() }

// Close releases idle pooled connections. The client remains usable; a
// subsequent call will dial fresh connections.
func (c *Client) Close() {
	c.tr.CloseIdleConnections()
}

// do encodes args (when non-nil), executes the described call, and decodes
// the response body into out (when non-nil). All resource operations funnel
// through here.
func (c *Client) do(ctx context.Context, method, path, verb string, args, out any) error {
	var body []byte
	if args != nil {
		b, err := codec.Encode(args)
		if err != nil {
			return err
		}
		body = b
	}

	resp, err := c.tr.Execute(ctx, transport.Descriptor{
		Method:     method,
		Path:       path,
		Query:      verb,
		Body:       body,
		Idempotent: idempotentVerb(method),
	})
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

// doIdempotent is do for POST operations that are safe to retry, such as
// upserts and reads expressed as POSTs.
func (c *Client) doIdempotent(ctx context.Context, method, path, verb string, args, out any) error {
	var body []byte
	if args != nil {
		b, err := codec.Encode(args)
		if err != nil {
			return err
		}
		body = b
	}

	resp, err := c.tr.Execute(ctx, transport.Descriptor{
		Method:     method,
		Path:       path,
		Query:      verb,
		Body:       body,
		Idempotent: true,
	})
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

func (c *Client) decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("vortex: reading response body: %w", err)
	}
	requestID := resp.Header.Get("Request-Id")
	if requestID == "" {
		requestID = resp.Header.Get("Request-ID")
	}
	return codec.Decode(resp.StatusCode, requestID, body, out)
}

func idempotentVerb(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// apiPath builds an endpoint-relative path under the configured API version.
func (c *Client) apiPath(segments ...string) string {
	path := "/" + c.cfg.APIVersion
	for _, s := range segments {
		path += "/" + s
	}
	return path
}

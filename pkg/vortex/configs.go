package vortex

import (
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Config holds connection and behavior settings for the Vortex client.
//
// Account, APIKey and Endpoint are required; everything else defaults to
// sensible values. The config is copied at construction and immutable
// afterwards.
//
// Example:
//
//	cfg := vortex.NewConfig("my-account", os.Getenv("VORTEX_API_KEY"), "http://127.0.0.1:5287").
//	    WithMaxRetries(5).
//	    WithRequestTimeout(10 * time.Second)
//	client, err := vortex.NewClient(cfg)
type Config struct {
	// Account name the API key belongs to.
	Account string `yaml:"account" env:"VORTEX_ACCOUNT"`

	// APIKey authenticates the account. Treated as a secret: it is folded
	// into the auth token at construction and never logged.
	APIKey string `yaml:"api_key" env:"VORTEX_API_KEY"`

	// Endpoint is the base URL of the service. A bare host[:port] gets an
	// http:// prefix.
	Endpoint string `yaml:"endpoint" env:"VORTEX_ENDPOINT"`

	// APIVersion selects the wire protocol version. Only "v1" exists.
	APIVersion string `yaml:"api_version"`

	// RequestTimeout bounds each attempt. Default 30s.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ConnectTimeout bounds dialing a new connection. Default 5s.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	// OverallTimeout, when set, bounds a whole retried call including
	// backoff waits. Zero means per-attempt timeouts only.
	OverallTimeout time.Duration `yaml:"overall_timeout"`

	// MaxRetries is the number of re-sends after the first attempt of an
	// idempotent request. Default 3. Use WithMaxRetries(0) to disable
	// retries entirely.
	MaxRetries int `yaml:"max_retries"`

	retriesSet bool

	// Backoff schedule: delay grows from BackoffBase by BackoffMultiplier
	// per attempt, jittered, and never exceeds BackoffMaxDelay.
	BackoffBase       time.Duration `yaml:"backoff_base"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
	BackoffMaxDelay   time.Duration `yaml:"backoff_max_delay"`

	// RetryStatuses are the HTTP statuses retried for idempotent requests.
	RetryStatuses []int `yaml:"retry_statuses"`

	// UserAgent sent with every request.
	UserAgent string `yaml:"user_agent"`

	// Logger receives structured debug logs. Nil means no logging.
	Logger *zap.Logger `yaml:"-"`

	// Tracing enables otel spans around every request attempt.
	Tracing bool `yaml:"tracing"`

	// Metrics, when non-nil, receives request duration and in-flight
	// collectors.
	Metrics prometheus.Registerer `yaml:"-"`
}

// Defaults applied by Validate when the corresponding field is unset.
const (
	DefaultRequestTimeout    = 30 * time.Second
	DefaultConnectTimeout    = 5 * time.Second
	DefaultMaxRetries        = 3
	DefaultBackoffBase       = 100 * time.Millisecond
	DefaultBackoffMultiplier = 2.0
	DefaultBackoffMaxDelay   = 10 * time.Second
	DefaultUserAgent         = "vortex-sdk-go"
)

// DefaultRetryStatuses are the statuses treated as transient by default.
func DefaultRetryStatuses() []int { return []int{429, 502, 503, 504} }

// NewConfig returns a Config with the required fields set and defaults for
// the rest.
func NewConfig(account, apiKey, endpoint string) *Config {
	return &Config{
		Account:  account,
		APIKey:   apiKey,
		Endpoint: endpoint,
	}
}

func (c *Config) WithRequestTimeout(d time.Duration) *Config {
	c.RequestTimeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithOverallTimeout(d time.Duration) *Config {
	c.OverallTimeout = d
	return c
}

func (c *Config) WithMaxRetries(n int) *Config {
	c.MaxRetries = n
	c.retriesSet = true
	return c
}

func (c *Config) WithBackoff(base time.Duration, multiplier float64, maxDelay time.Duration) *Config {
	c.BackoffBase = base
	c.BackoffMultiplier = multiplier
	c.BackoffMaxDelay = maxDelay
	return c
}

func (c *Config) WithRetryStatuses(statuses ...int) *Config {
	c.RetryStatuses = statuses
	return c
}

func (c *Config) WithLogger(l *zap.Logger) *Config {
	c.Logger = l
	return c
}

func (c *Config) WithTracing(enabled bool) *Config {
	c.Tracing = enabled
	return c
}

func (c *Config) WithMetrics(reg prometheus.Registerer) *Config {
	c.Metrics = reg
	return c
}

// Validate checks required fields, normalizes the endpoint, and fills in
// defaults. It mutates the receiver and is called once by NewClient on its
// private copy.
func (c *Config) Validate() error {
	if c.Account == "" {
		return &ConfigError{Kind: MissingField, Field: "account", Reason: "must not be empty"}
	}
	if c.APIKey == "" {
		return &ConfigError{Kind: MissingField, Field: "api_key", Reason: "must not be empty"}
	}
	if c.Endpoint == "" {
		return &ConfigError{Kind: MissingField, Field: "endpoint", Reason: "must not be empty"}
	}

	endpoint := c.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}
	endpoint = strings.TrimRight(endpoint, "/")
	u, err := url.Parse(endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ConfigError{Kind: InvalidEndpoint, Field: "endpoint", Reason: "must be a valid absolute URL"}
	}
	c.Endpoint = endpoint

	if c.APIVersion == "" {
		c.APIVersion = "v1"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.MaxRetries < 0 {
		return &ConfigError{Kind: MissingField, Field: "max_retries", Reason: "must not be negative"}
	}
	if c.MaxRetries == 0 && !c.retriesSet {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BackoffBase == 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.BackoffMultiplier == 0 {
		c.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if c.BackoffMaxDelay == 0 {
		c.BackoffMaxDelay = DefaultBackoffMaxDelay
	}
	if len(c.RetryStatuses) == 0 {
		c.RetryStatuses = DefaultRetryStatuses()
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return nil
}

// endpointURL parses the already-normalized endpoint. Only valid after
// Validate succeeded.
func (c *Config) endpointURL() (*url.URL, error) {
	return url.Parse(c.Endpoint)
}

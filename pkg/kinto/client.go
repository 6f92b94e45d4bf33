package kinto

import "time"

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Header is one name/value pair attached to outgoing requests. Headers
// are kept as an ordered list so the pair set a request was built with is
// reproduced verbatim on the wire.
type Header struct {
	Name  string
	Value string
}

// Client holds the base URL and the header set shared by every request.
// It is immutable once constructed and safe to read from any number of
// in-flight requests; the Authorization header is always present, with an
// empty value for unauthenticated access.
type Client struct {
	BaseURL string
	Headers []Header
}

// NewClient creates a client for the given base URL and credentials.
func NewClient(baseURL string, auth Auth) *Client {
	return &Client{
		BaseURL: baseURL,
		Headers: []Header{AuthHeader(auth)},
	}
}

// WithHeader returns a copy of the client with one extra default header.
func (c *Client) WithHeader(name, value string) *Client {
	headers := make([]Header, len(c.Headers), len(c.Headers)+1)
	copy(headers, c.Headers)

	return &Client{
		BaseURL: c.BaseURL,
		Headers: append(headers, Header{Name: name, Value: value}),
	}
}

// Config represents client configuration for building a ready-to-use
// client via pkg/kintoclient.
//
// # Authentication precedence
//
//  1. Auth: if set, it is used as-is.
//  2. AccessToken: used as a static Bearer token.
//  3. Username/Password: Basic authentication.
//  4. No credentials: requests are sent with an empty Authorization value.
//
// # Timeouts and retries
//
// Per-request timeouts should generally be controlled via context passed
// to client methods. Retry behavior can be tuned via RetryMax/
// RetryWaitMin/RetryWaitMax; retries apply to transient failures only
// (>=500, 429, and connection errors).
type Config struct {
	// ServerURL: base URL for the Kinto API (e.g. "https://kinto.example.com/v1").
	// kintoclient.New normalizes this value by trimming a trailing slash
	// and adding "https://" if no scheme is present.
	ServerURL string

	// Authentication options (provide one)
	Auth        Auth
	AccessToken string
	Username    string
	Password    string

	// Optional configurations
	HTTPTimeout  time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// Debug enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug  bool
	Logger Logger
	// UserAgent overrides the default User-Agent header sent by the client.
	UserAgent string
	// Cache optionally caches GET responses. See NewCacheFromConfig.
	Cache Cache
}

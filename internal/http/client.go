// Package http executes kinto.Request descriptions over a retrying HTTP
// transport. The pure core never dispatches anything itself; this
// package is the single place a request description turns into wire
// traffic.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/kinto-client/internal/constants"
	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

const defaultUserAgent = "kinto-client-go"

// Client dispatches request descriptions and delivers raw responses.
// Transient failures (>=500, 429, connection errors) are retried by the
// underlying retryablehttp client; 4xx responses are delivered as-is for
// the response interpreter to classify.
type Client struct {
	client       *retryablehttp.Client
	logger       kinto.Logger
	debug        bool
	userAgent    string
	cache        kinto.Cache
	cacheTTL     time.Duration
	interceptors *kinto.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger kinto.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the retry behavior for transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.client.RetryMax = retryMax
		c.client.RetryWaitMin = waitMin
		c.client.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.HTTPClient.Timeout = timeout
	}
}

// WithCache serves repeated GETs from the given cache for ttl.
func WithCache(cache kinto.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithInterceptors hooks the chain around every dispatch.
func WithInterceptors(chain *kinto.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport client.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		client:    retryClient,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes one request description. The error is non-nil only for
// transport-level failures, surfaced as *kinto.NetworkError; any
// received HTTP response, success or failure status alike, is returned
// for the response interpreter to classify.
func (c *Client) Do(ctx context.Context, req *kinto.Request) (*kinto.Response, error) {
	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("running request interceptors: %w", err)
		}
	}

	if resp, ok := c.fromCache(ctx, req); ok {
		return resp, nil
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &kinto.NetworkError{Err: fmt.Errorf("building request: %w", err)}
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for _, header := range req.Headers {
		httpReq.Header.Add(header.Name, header.Value)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &kinto.NetworkError{Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &kinto.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	resp := &kinto.Response{
		StatusCode: httpResp.StatusCode,
		Status:     http.StatusText(httpResp.StatusCode),
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
			"status": resp.StatusCode,
			"bytes":  len(body),
		})
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
		if err != nil {
			return nil, fmt.Errorf("running response interceptors: %w", err)
		}
	}

	c.toCache(ctx, req, resp)

	return resp, nil
}

// fromCache serves a GET from the cache when an unexpired entry exists.
func (c *Client) fromCache(ctx context.Context, req *kinto.Request) (*kinto.Response, bool) {
	if c.cache == nil || req.Method != http.MethodGet {
		return nil, false
	}

	entry, err := c.cache.Get(ctx, req.URL)
	if err != nil {
		return nil, false
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP cache hit", map[string]interface{}{"url": req.URL})
	}

	return &kinto.Response{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		Headers:    http.Header(entry.Headers),
		Body:       entry.Data,
	}, true
}

// toCache stores successful GET responses.
func (c *Client) toCache(ctx context.Context, req *kinto.Request, resp *kinto.Response) {
	if c.cache == nil || req.Method != http.MethodGet {
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return
	}

	ttl := c.cacheTTL
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}

	entry := &kinto.CacheEntry{
		Data:      resp.Body,
		Headers:   map[string][]string(resp.Headers),
		ExpiresAt: time.Now().Add(ttl),
		ETag:      resp.Headers.Get("ETag"),
	}

	err := c.cache.Set(ctx, req.URL, entry)
	if err != nil && c.logger != nil {
		c.logger.Warn("failed to cache response", map[string]interface{}{
			"url":   req.URL,
			"error": err.Error(),
		})
	}
}

package kinto

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RequestInterceptor is called before a request is dispatched. It may
// mutate the request in place.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// LoggingRequestInterceptor logs outgoing requests.
func LoggingRequestInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs received responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
			"status": resp.StatusCode,
		})

		return nil
	}
}

// RequestMetrics counts requests and failures per HTTP method.
type RequestMetrics struct {
	mu       sync.Mutex
	requests map[string]int
	failures map[string]int
	latency  map[string]time.Duration
}

// NewRequestMetrics creates an empty metrics collector.
func NewRequestMetrics() *RequestMetrics {
	return &RequestMetrics{
		requests: make(map[string]int),
		failures: make(map[string]int),
		latency:  make(map[string]time.Duration),
	}
}

// Record tallies one completed request.
func (m *RequestMetrics) Record(method string, statusCode int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests[method]++
	m.latency[method] += elapsed

	if statusCode >= 400 {
		m.failures[method]++
	}
}

// Snapshot returns per-method request and failure counts.
func (m *RequestMetrics) Snapshot() (requests, failures map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	requests = make(map[string]int, len(m.requests))
	for k, v := range m.requests {
		requests[k] = v
	}

	failures = make(map[string]int, len(m.failures))
	for k, v := range m.failures {
		failures[k] = v
	}

	return requests, failures
}

type metricsStartKey struct{}

// MetricsResponseInterceptor records one completed request into the
// collector. Pair it with WithRequestStart on the request side.
func MetricsResponseInterceptor(metrics *RequestMetrics) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		start, _ := ctx.Value(metricsStartKey{}).(time.Time)

		var elapsed time.Duration
		if !start.IsZero() {
			elapsed = time.Since(start)
		}

		metrics.Record(req.Method, resp.StatusCode, elapsed)

		return nil
	}
}

// WithRequestStart stamps the dispatch time used by
// MetricsResponseInterceptor to compute latency.
func WithRequestStart(ctx context.Context) context.Context {
	return context.WithValue(ctx, metricsStartKey{}, time.Now())
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.log(msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.log(msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.log(msg) }

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func TestClientDo(t *testing.T) {
	t.Parallel()

	t.Run("sends headers and body", func(t *testing.T) {
		t.Parallel()

		var gotMethod, gotAuth, gotContentType, gotAccept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotAccept = r.Header.Get("Accept")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data": {"id": "b1", "last_modified": 1}}`))
		}))
		defer server.Close()

		client := NewClient()
		resp, err := client.Do(context.Background(), &kinto.Request{
			Method:  "POST",
			URL:     server.URL + "/v1/buckets",
			Headers: []kinto.Header{{Name: "Authorization", Value: "Bearer tok"}},
			Body:    []byte(`{"data": {"id": "b1"}}`),
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Created", resp.Status)
		assert.Equal(t, "POST", gotMethod)
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "application/json", gotAccept)
	})

	t.Run("omits content type without body", func(t *testing.T) {
		t.Parallel()

		var gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := NewClient()
		_, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets"})
		require.NoError(t, err)

		assert.Empty(t, gotContentType)
	})

	t.Run("returns failure responses without error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errno": 110, "message": "missing", "code": 404, "error": "Not Found"}`))
		}))
		defer server.Close()

		client := NewClient()
		resp, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets/nope"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(resp.Body), `"errno": 110`)
	})

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()

		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&attempts, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := NewClient(WithRetryConfig(3, time.Millisecond, 10*time.Millisecond))
		resp, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errno": 121, "message": "nope", "code": 403, "error": "Forbidden"}`))
		}))
		defer server.Close()

		client := NewClient(WithRetryConfig(3, time.Millisecond, 10*time.Millisecond))
		resp, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("wraps connection failures", func(t *testing.T) {
		t.Parallel()

		client := NewClient(WithRetryConfig(0, time.Millisecond, time.Millisecond))
		_, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: "http://127.0.0.1:1/v1/buckets"})
		require.Error(t, err)

		var netErr *kinto.NetworkError
		assert.ErrorAs(t, err, &netErr)
	})

	t.Run("logs request and response in debug mode", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		logger := &recordingLogger{}
		client := NewClient(WithLogger(logger), WithDebug(true))
		_, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets"})
		require.NoError(t, err)

		messages := logger.messages()
		require.Len(t, messages, 2)
		assert.Equal(t, "HTTP Request", messages[0])
		assert.Equal(t, "HTTP Response", messages[1])
	})

	t.Run("sets user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := NewClient(WithUserAgent("my-app/1.0"))
		_, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets"})
		require.NoError(t, err)

		assert.Equal(t, "my-app/1.0", gotUA)
	})
}

func TestClientCaching(t *testing.T) {
	t.Parallel()

	t.Run("serves repeated gets from cache", func(t *testing.T) {
		t.Parallel()

		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.Header().Set("Total-Records", "1")
			_, _ = w.Write([]byte(`{"data": [{"id": "r1", "last_modified": 1}]}`))
		}))
		defer server.Close()

		cache := kinto.NewMemoryCache(10)
		client := NewClient(WithCache(cache, time.Minute))

		req := &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets/b/collections/c/records"}

		first, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		second, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
		assert.Equal(t, first.Body, second.Body)
		assert.Equal(t, "1", second.Headers.Get("Total-Records"))
	})

	t.Run("does not cache writes", func(t *testing.T) {
		t.Parallel()

		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			_, _ = w.Write([]byte(`{"data": {"id": "b1", "last_modified": 1}}`))
		}))
		defer server.Close()

		cache := kinto.NewMemoryCache(10)
		client := NewClient(WithCache(cache, time.Minute))

		req := &kinto.Request{Method: "POST", URL: server.URL + "/v1/buckets", Body: []byte(`{"data": {}}`)}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		_, err = client.Do(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})

	t.Run("does not cache failures", func(t *testing.T) {
		t.Parallel()

		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errno": 110, "message": "missing", "code": 404, "error": "Not Found"}`))
		}))
		defer server.Close()

		cache := kinto.NewMemoryCache(10)
		client := NewClient(WithCache(cache, time.Minute))

		req := &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets/nope"}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		_, err = client.Do(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})
}

func TestClientInterceptors(t *testing.T) {
	t.Parallel()

	t.Run("runs request and response interceptors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "traced", r.Header.Get("X-Trace"))
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		var sawStatus int
		chain := kinto.NewInterceptorChain()
		chain.AddRequestInterceptor(func(ctx context.Context, req *kinto.Request) error {
			req.Headers = append(req.Headers, kinto.Header{Name: "X-Trace", Value: "traced"})
			return nil
		})
		chain.AddResponseInterceptor(func(ctx context.Context, req *kinto.Request, resp *kinto.Response) error {
			sawStatus = resp.StatusCode
			return nil
		})

		client := NewClient(WithInterceptors(chain))
		_, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, sawStatus)
	})

	t.Run("records metrics", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		metrics := kinto.NewRequestMetrics()
		chain := kinto.NewInterceptorChain()
		chain.AddResponseInterceptor(kinto.MetricsResponseInterceptor(metrics))

		client := NewClient(WithInterceptors(chain))
		_, err := client.Do(context.Background(), &kinto.Request{Method: "GET", URL: server.URL + "/v1/buckets"})
		require.NoError(t, err)

		requests, failures := metrics.Snapshot()
		assert.Equal(t, 1, requests["GET"])
		assert.Zero(t, failures["GET"])
	})
}

package kinto_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

func TestBatchRequest(t *testing.T) {
	t.Parallel()

	client := kinto.NewClient("https://kinto.example.com/v1/", kinto.TokenAuth{Token: "tok"})

	req, err := kinto.BatchRequest(client,
		&kinto.BatchDefaults{Method: "POST", Headers: map[string]string{"If-None-Match": "*"}},
		[]kinto.BatchOperation{
			{Path: "/buckets/blog/collections/posts/records", Body: map[string]interface{}{"data": map[string]interface{}{"title": "a"}}},
			{Method: "DELETE", Path: "/buckets/blog/collections/posts/records/r1"},
		})
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://kinto.example.com/v1/batch", req.URL)
	assert.Equal(t, []kinto.Header{{Name: "Authorization", Value: "Bearer tok"}}, req.Headers)
	assert.JSONEq(t, `{
		"defaults": {"method": "POST", "headers": {"If-None-Match": "*"}},
		"requests": [
			{"path": "/buckets/blog/collections/posts/records", "body": {"data": {"title": "a"}}},
			{"method": "DELETE", "path": "/buckets/blog/collections/posts/records/r1"}
		]
	}`, string(req.Body))
}

func TestBatchRequestWithoutDefaults(t *testing.T) {
	t.Parallel()

	client := kinto.NewClient("https://kinto.example.com/v1", kinto.NoAuth{})

	req, err := kinto.BatchRequest(client, nil, []kinto.BatchOperation{{Method: "GET", Path: "/"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"requests": [{"method": "GET", "path": "/"}]}`, string(req.Body))
}

func TestDecodeBatchResponse(t *testing.T) {
	t.Parallel()

	t.Run("per-subrequest outcomes in submission order", func(t *testing.T) {
		t.Parallel()

		results, err := kinto.DecodeBatchResponse(&kinto.Response{
			StatusCode: 200,
			Status:     "OK",
			Headers:    http.Header{},
			Body: []byte(`{"responses": [
				{"status": 201, "path": "/buckets/b1", "headers": {}, "body": {"data": {"id": "b1"}}},
				{"status": 404, "path": "/buckets/b2", "headers": {}, "body": {"errno": 110, "message": "missing", "code": 404, "error": "Not Found"}}
			]}`),
		})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.True(t, results[0].Success())
		assert.Equal(t, "/buckets/b1", results[0].Path)
		assert.False(t, results[1].Success())
		assert.Equal(t, 404, results[1].Status)
	})

	t.Run("rejected batch becomes a typed error", func(t *testing.T) {
		t.Parallel()

		_, err := kinto.DecodeBatchResponse(&kinto.Response{
			StatusCode: 400,
			Status:     "Bad Request",
			Headers:    http.Header{},
			Body:       []byte(`{"errno": 107, "message": "requests is missing", "code": 400, "error": "Invalid parameters"}`),
		})
		require.Error(t, err)

		var kintoErr *kinto.KintoError
		require.ErrorAs(t, err, &kintoErr)
		assert.Equal(t, kinto.ErrnoInvalidParameters, kintoErr.Detail.Errno)
	})

	t.Run("undecodable payload is a ServerError", func(t *testing.T) {
		t.Parallel()

		_, err := kinto.DecodeBatchResponse(&kinto.Response{
			StatusCode: 200,
			Status:     "OK",
			Headers:    http.Header{},
			Body:       []byte(`not json`),
		})
		require.Error(t, err)

		var serverErr *kinto.ServerError
		assert.ErrorAs(t, err, &serverErr)
	})
}

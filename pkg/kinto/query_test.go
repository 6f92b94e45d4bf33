package kinto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

func listRequest() *kinto.Request {
	client := kinto.NewClient("https://kinto.example.com/v1", kinto.NoAuth{})
	resource := kinto.RecordResource("blog", "posts", kinto.DecodeJSON[kinto.Record]())

	return kinto.GetListRequest(client, resource)
}

func TestWithFilter(t *testing.T) {
	t.Parallel()

	base := "https://kinto.example.com/v1/buckets/blog/collections/posts/records"

	tests := []struct {
		name     string
		filter   kinto.Filter
		expected string
	}{
		{
			name:     "equal uses the bare field name",
			filter:   kinto.Equal{Field: "status", Value: "done"},
			expected: base + "?status=done",
		},
		{
			name:     "min",
			filter:   kinto.Min{Field: "age", Value: "21"},
			expected: base + "?min_age=21",
		},
		{
			name:     "max",
			filter:   kinto.Max{Field: "age", Value: "64"},
			expected: base + "?max_age=64",
		},
		{
			name:     "lt",
			filter:   kinto.LT{Field: "age", Value: "21"},
			expected: base + "?lt_age=21",
		},
		{
			name:     "gt",
			filter:   kinto.GT{Field: "age", Value: "21"},
			expected: base + "?gt_age=21",
		},
		{
			name:     "in joins values with commas",
			filter:   kinto.IN{Field: "status", Values: []string{"draft", "done"}},
			expected: base + "?in_status=draft%2Cdone",
		},
		{
			name:     "not",
			filter:   kinto.NOT{Field: "status", Value: "draft"},
			expected: base + "?not_status=draft",
		},
		{
			name:     "like",
			filter:   kinto.Like{Field: "title", Value: "kinto"},
			expected: base + "?like_title=kinto",
		},
		{
			name:     "since",
			filter:   kinto.Since{Value: "1712345678901"},
			expected: base + "?_since=1712345678901",
		},
		{
			name:     "before",
			filter:   kinto.Before{Value: "1712345678901"},
			expected: base + "?_before=1712345678901",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, listRequest().WithFilter(tt.filter).URL)
		})
	}
}

func TestWithSortAndLimit(t *testing.T) {
	t.Parallel()

	req := listRequest().WithSort("-last_modified", "title").WithLimit(50)

	assert.Equal(t,
		"https://kinto.example.com/v1/buckets/blog/collections/posts/records?_sort=-last_modified%2Ctitle&_limit=50",
		req.URL)
}

func TestWithParam(t *testing.T) {
	t.Parallel()

	t.Run("appends after existing parameters", func(t *testing.T) {
		t.Parallel()

		req := listRequest().WithParam("a", "1").WithParam("b", "2").WithParam("c", "3")
		assert.Equal(t,
			"https://kinto.example.com/v1/buckets/blog/collections/posts/records?a=1&b=2&c=3",
			req.URL)
	})

	t.Run("duplicate keys are kept", func(t *testing.T) {
		t.Parallel()

		req := listRequest().WithParam("status", "draft").WithParam("status", "done")
		assert.Equal(t,
			"https://kinto.example.com/v1/buckets/blog/collections/posts/records?status=draft&status=done",
			req.URL)
	})

	t.Run("spaces encode as plus", func(t *testing.T) {
		t.Parallel()

		req := listRequest().WithParam("title", "hello world")
		assert.Equal(t,
			"https://kinto.example.com/v1/buckets/blog/collections/posts/records?title=hello+world",
			req.URL)
	})

	t.Run("reserved characters are escaped", func(t *testing.T) {
		t.Parallel()

		req := listRequest().WithParam("q", "a&b=c")
		assert.Equal(t,
			"https://kinto.example.com/v1/buckets/blog/collections/posts/records?q=a%26b%3Dc",
			req.URL)
	})

	t.Run("encoding is stable across repeated calls", func(t *testing.T) {
		t.Parallel()

		req := listRequest().WithParam("title", "hello world").WithParam("a", "1").WithParam("b", "2")
		assert.Equal(t,
			"https://kinto.example.com/v1/buckets/blog/collections/posts/records?title=hello+world&a=1&b=2",
			req.URL)
	})

	t.Run("pairs without exactly one equals sign are dropped", func(t *testing.T) {
		t.Parallel()

		req := &kinto.Request{
			Method: "GET",
			URL:    "https://kinto.example.com/v1/buckets?broken&x=1=2&keep=yes",
		}

		out := req.WithParam("new", "v")
		assert.Equal(t, "https://kinto.example.com/v1/buckets?keep=yes&new=v", out.URL)
	})

	t.Run("does not mutate the original request", func(t *testing.T) {
		t.Parallel()

		original := listRequest()
		originalURL := original.URL

		_ = original.WithParam("a", "1")
		assert.Equal(t, originalURL, original.URL)
	})
}

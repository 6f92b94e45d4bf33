package kinto

import (
	"context"
	"sort"
)

// ListOptions bundles the query modifiers of a list call. A nil
// *ListOptions means no modifiers.
type ListOptions struct {
	Filters []Filter
	// Sort keys in order of precedence; a leading "-" sorts descending.
	Sort []string
	// Limit caps the page size when > 0.
	Limit int
	// Params are extra query parameters passed through verbatim.
	Params map[string]string
}

// Apply appends the options' query parameters to the request. Filters
// come first, then sort, limit, and extra params in key order.
func (o *ListOptions) Apply(req *Request) *Request {
	if o == nil {
		return req
	}

	out := req
	for _, f := range o.Filters {
		out = out.WithFilter(f)
	}

	if len(o.Sort) > 0 {
		out = out.WithSort(o.Sort...)
	}

	if o.Limit > 0 {
		out = out.WithLimit(o.Limit)
	}

	keys := make([]string, 0, len(o.Params))
	for key := range o.Params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		out = out.WithParam(key, o.Params[key])
	}

	return out
}

// WriteOptions carries the concurrency guards of a write call. A nil
// *WriteOptions means an unguarded write.
type WriteOptions struct {
	// IfMatch guards the write on the object's last_modified timestamp
	// when > 0; the server answers errno 114 if the object changed since.
	IfMatch int64
	// IfNoneMatchAny makes the write succeed only if the object does not
	// exist yet.
	IfNoneMatchAny bool
}

// Apply appends the options' precondition headers to the request.
func (o *WriteOptions) Apply(req *Request) *Request {
	if o == nil {
		return req
	}

	out := req
	if o.IfMatch > 0 {
		out = out.WithIfMatch(o.IfMatch)
	}

	if o.IfNoneMatchAny {
		out = out.WithIfNoneMatchAny()
	}

	return out
}

// ResourceAPI is the operational surface of one level of the hierarchy.
// The pure request builders and response decoders in this package remain
// available for callers that need lower-level control.
type ResourceAPI[T any] interface {
	// Get fetches one object by id.
	Get(ctx context.Context, id string) (T, error)
	// List fetches the first page.
	List(ctx context.Context, opts *ListOptions) (*Pager[T], error)
	// LoadNextPage fetches the pager's next page and merges it in.
	// ErrNoNextPage is returned when the pager is exhausted.
	LoadNextPage(ctx context.Context, pager *Pager[T]) (*Pager[T], error)
	// ListAll follows Next-Page links until exhaustion and returns every
	// object.
	ListAll(ctx context.Context, opts *ListOptions) ([]T, error)
	// Create posts a new object; the server assigns the id unless the
	// data carries one.
	Create(ctx context.Context, data interface{}, opts *WriteOptions) (T, error)
	// Update patches an existing object.
	Update(ctx context.Context, id string, data interface{}, opts *WriteOptions) (T, error)
	// Replace puts the full object, creating it if absent.
	Replace(ctx context.Context, id string, data interface{}, opts *WriteOptions) (T, error)
	// Delete removes an object.
	Delete(ctx context.Context, id string, opts *WriteOptions) error
}

// API is the top-level operational client surface.
type API interface {
	// ServerInfo fetches the server root document.
	ServerInfo(ctx context.Context) (*ServerInfo, error)
	// Buckets addresses the top-level buckets.
	Buckets() ResourceAPI[Bucket]
	// Collections addresses the collections of one bucket.
	Collections(bucket string) ResourceAPI[Collection]
	// Records addresses the records of one collection.
	Records(bucket, collection string) ResourceAPI[Record]
	// Batch sends multiple operations in one round trip.
	Batch(ctx context.Context, defaults *BatchDefaults, operations []BatchOperation) ([]BatchResult, error)
}

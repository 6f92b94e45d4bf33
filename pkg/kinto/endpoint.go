package kinto

import "strings"

// Endpoint is a closed union of the seven addressable locations in the
// bucket/collection/record hierarchy. An Endpoint value fully determines
// its URL given a base URL.
type Endpoint interface {
	segments() []string
}

// RootEndpoint addresses the server root.
type RootEndpoint struct{}

func (RootEndpoint) segments() []string {
	return nil
}

// BucketListEndpoint addresses all buckets.
type BucketListEndpoint struct{}

func (BucketListEndpoint) segments() []string {
	return []string{"buckets"}
}

// BucketEndpoint addresses one bucket.
type BucketEndpoint struct {
	Bucket string
}

func (e BucketEndpoint) segments() []string {
	return []string{"buckets", e.Bucket}
}

// CollectionListEndpoint addresses all collections in a bucket.
type CollectionListEndpoint struct {
	Bucket string
}

func (e CollectionListEndpoint) segments() []string {
	return []string{"buckets", e.Bucket, "collections"}
}

// CollectionEndpoint addresses one collection.
type CollectionEndpoint struct {
	Bucket     string
	Collection string
}

func (e CollectionEndpoint) segments() []string {
	return []string{"buckets", e.Bucket, "collections", e.Collection}
}

// RecordListEndpoint addresses all records in a collection.
type RecordListEndpoint struct {
	Bucket     string
	Collection string
}

func (e RecordListEndpoint) segments() []string {
	return []string{"buckets", e.Bucket, "collections", e.Collection, "records"}
}

// RecordEndpoint addresses one record.
type RecordEndpoint struct {
	Bucket     string
	Collection string
	Record     string
}

func (e RecordEndpoint) segments() []string {
	return []string{"buckets", e.Bucket, "collections", e.Collection, "records", e.Record}
}

// ResolveURL maps an endpoint plus a base URL to a concrete absolute URL.
// At most one trailing slash is stripped from the base URL before path
// segments are appended. The root endpoint keeps a trailing slash (the
// server redirects the bare form); every other endpoint never ends in one.
// Identifiers are not percent-encoded: callers supply URL-safe values.
func ResolveURL(baseURL string, endpoint Endpoint) string {
	base := strings.TrimSuffix(baseURL, "/")

	segs := endpoint.segments()
	if len(segs) == 0 {
		return base + "/"
	}

	return base + "/" + strings.Join(segs, "/")
}

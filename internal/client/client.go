// Package client implements the kinto.API operational surface on top of
// the pure core and the HTTP transport.
package client

import (
	"context"
	"errors"
	"fmt"

	kintohttp "github.com/fivetwenty-io/kinto-client/internal/http"
	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

// Static errors for err113 compliance.
var ErrTooManyPages = errors.New("too many pages")

// Client implements the kinto.API interface.
type Client struct {
	core       *kinto.Client
	httpClient *kintohttp.Client
	logger     kinto.Logger
}

// New creates an operational client from a core client and a transport.
func New(core *kinto.Client, httpClient *kintohttp.Client, logger kinto.Logger) *Client {
	return &Client{
		core:       core,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ServerInfo implements kinto.API.ServerInfo.
func (c *Client) ServerInfo(ctx context.Context) (*kinto.ServerInfo, error) {
	resp, err := c.httpClient.Do(ctx, kinto.ServerInfoRequest(c.core))
	if err != nil {
		return nil, fmt.Errorf("getting server info: %w", err)
	}

	return kinto.DecodeServerInfoResponse(resp)
}

// Batch implements kinto.API.Batch.
func (c *Client) Batch(ctx context.Context, defaults *kinto.BatchDefaults, operations []kinto.BatchOperation) ([]kinto.BatchResult, error) {
	req, err := kinto.BatchRequest(c.core, defaults, operations)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sending batch: %w", err)
	}

	return kinto.DecodeBatchResponse(resp)
}

// Buckets implements kinto.API.Buckets.
func (c *Client) Buckets() kinto.ResourceAPI[kinto.Bucket] {
	return &resourceClient[kinto.Bucket]{
		core:       c.core,
		httpClient: c.httpClient,
		resource:   kinto.BucketResource(kinto.DecodeJSON[kinto.Bucket]()),
	}
}

// Collections implements kinto.API.Collections.
func (c *Client) Collections(bucket string) kinto.ResourceAPI[kinto.Collection] {
	return &resourceClient[kinto.Collection]{
		core:       c.core,
		httpClient: c.httpClient,
		resource:   kinto.CollectionResource(bucket, kinto.DecodeJSON[kinto.Collection]()),
	}
}

// Records implements kinto.API.Records.
func (c *Client) Records(bucket, collection string) kinto.ResourceAPI[kinto.Record] {
	return &resourceClient[kinto.Record]{
		core:       c.core,
		httpClient: c.httpClient,
		resource:   kinto.RecordResource(bucket, collection, kinto.DecodeJSON[kinto.Record]()),
	}
}

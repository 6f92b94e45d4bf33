package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/kinto-client/internal/constants"
	kintohttp "github.com/fivetwenty-io/kinto-client/internal/http"
	"github.com/fivetwenty-io/kinto-client/pkg/kinto"
)

// resourceClient implements kinto.ResourceAPI for one level of the
// hierarchy. Buckets, collections and records share the same CRUD and
// pagination mechanics; only the bound endpoints differ.
type resourceClient[T any] struct {
	core       *kinto.Client
	httpClient *kintohttp.Client
	resource   kinto.Resource[T]
}

// Get implements kinto.ResourceAPI.Get.
func (c *resourceClient[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	resp, err := c.httpClient.Do(ctx, kinto.GetRequest(c.core, c.resource, id))
	if err != nil {
		return zero, fmt.Errorf("getting object: %w", err)
	}

	return kinto.DecodeItemResponse(c.resource, resp)
}

// List implements kinto.ResourceAPI.List.
func (c *resourceClient[T]) List(ctx context.Context, opts *kinto.ListOptions) (*kinto.Pager[T], error) {
	req := opts.Apply(kinto.GetListRequest(c.core, c.resource))

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}

	return kinto.DecodeListResponse(c.core, c.resource, resp)
}

// LoadNextPage implements kinto.ResourceAPI.LoadNextPage.
func (c *resourceClient[T]) LoadNextPage(ctx context.Context, pager *kinto.Pager[T]) (*kinto.Pager[T], error) {
	req, ok := pager.NextPageRequest()
	if !ok {
		return nil, kinto.ErrNoNextPage
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("loading next page: %w", err)
	}

	next, err := pager.DecodeNextPage(resp)
	if err != nil {
		return nil, err
	}

	return pager.Merge(next), nil
}

// ListAll implements kinto.ResourceAPI.ListAll. The page-fetch cap
// guards against a server issuing cyclic Next-Page cursors.
func (c *resourceClient[T]) ListAll(ctx context.Context, opts *kinto.ListOptions) ([]T, error) {
	pager, err := c.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	for fetches := 1; pager.HasNextPage(); fetches++ {
		if fetches >= constants.MaxPageFetches {
			return nil, fmt.Errorf("%w: gave up after %d fetches", ErrTooManyPages, fetches)
		}

		pager, err = c.LoadNextPage(ctx, pager)
		if err != nil {
			return nil, err
		}
	}

	return pager.Objects, nil
}

// Create implements kinto.ResourceAPI.Create.
func (c *resourceClient[T]) Create(ctx context.Context, data interface{}, opts *kinto.WriteOptions) (T, error) {
	var zero T

	req, err := kinto.CreateRequest(c.core, c.resource, data)
	if err != nil {
		return zero, err
	}

	resp, err := c.httpClient.Do(ctx, opts.Apply(req))
	if err != nil {
		return zero, fmt.Errorf("creating object: %w", err)
	}

	return kinto.DecodeItemResponse(c.resource, resp)
}

// Update implements kinto.ResourceAPI.Update.
func (c *resourceClient[T]) Update(ctx context.Context, id string, data interface{}, opts *kinto.WriteOptions) (T, error) {
	var zero T

	req, err := kinto.UpdateRequest(c.core, c.resource, id, data)
	if err != nil {
		return zero, err
	}

	resp, err := c.httpClient.Do(ctx, opts.Apply(req))
	if err != nil {
		return zero, fmt.Errorf("updating object: %w", err)
	}

	return kinto.DecodeItemResponse(c.resource, resp)
}

// Replace implements kinto.ResourceAPI.Replace.
func (c *resourceClient[T]) Replace(ctx context.Context, id string, data interface{}, opts *kinto.WriteOptions) (T, error) {
	var zero T

	req, err := kinto.ReplaceRequest(c.core, c.resource, id, data)
	if err != nil {
		return zero, err
	}

	resp, err := c.httpClient.Do(ctx, opts.Apply(req))
	if err != nil {
		return zero, fmt.Errorf("replacing object: %w", err)
	}

	return kinto.DecodeItemResponse(c.resource, resp)
}

// Delete implements kinto.ResourceAPI.Delete. The server answers with a
// tombstone object which is decoded only to classify failures.
func (c *resourceClient[T]) Delete(ctx context.Context, id string, opts *kinto.WriteOptions) error {
	req := opts.Apply(kinto.DeleteRequest(c.core, c.resource, id))

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}

	_, err = kinto.DecodeItemResponse(c.resource, resp)

	return err
}

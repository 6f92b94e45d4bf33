package kinto

import "net/http"

// Pager accumulates plural-endpoint results across pages. Every
// operation produces a new Pager value; Objects grows append-only in
// page-arrival order, so its length is monotonically non-decreasing over
// successive loads.
type Pager[T any] struct {
	// Client is the originating client; retained across merges so
	// follow-up page requests reuse its headers.
	Client *Client
	// Objects is the accumulated result list.
	Objects []T
	// Total is the last-reported total record count, 0 if the server did
	// not report one.
	Total int
	// NextPage is the server-issued cursor URL for the following page,
	// or "" when the most recent fetch carried no Next-Page header.
	NextPage string

	decodeList func([]byte) ([]T, error)
}

// HasNextPage reports whether the server announced a further page.
func (p *Pager[T]) HasNextPage() bool {
	return p.NextPage != ""
}

// Merge folds a freshly-fetched pager into this one: objects are
// concatenated in order, the new total and cursor are adopted, and the
// original client and decoder are retained. Merge is associative over
// page order, so accumulating pages one by one equals merging them in
// bulk.
func (p *Pager[T]) Merge(next *Pager[T]) *Pager[T] {
	objects := make([]T, 0, len(p.Objects)+len(next.Objects))
	objects = append(objects, p.Objects...)
	objects = append(objects, next.Objects...)

	return &Pager[T]{
		Client:     p.Client,
		Objects:    objects,
		Total:      next.Total,
		NextPage:   next.NextPage,
		decodeList: p.decodeList,
	}
}

// NextPageRequest builds a GET against the literal next-page URL, which
// the server issues fully query-qualified. The second return value is
// false when there is no further page; that is the expected end-of-list
// outcome, not an error, and callers must check it before dispatching.
func (p *Pager[T]) NextPageRequest() (*Request, bool) {
	if !p.HasNextPage() {
		return nil, false
	}

	headers := make([]Header, len(p.Client.Headers))
	copy(headers, p.Client.Headers)

	return &Request{
		Method:  http.MethodGet,
		URL:     p.NextPage,
		Headers: headers,
	}, true
}

// DecodeNextPage interprets the response of a next-page request using the
// pager's retained decoder, yielding a fresh single-page Pager to be
// merged into this one.
func (p *Pager[T]) DecodeNextPage(resp *Response) (*Pager[T], error) {
	res := Resource[T]{DecodeList: p.decodeList}

	return DecodeListResponse(p.Client, res, resp)
}

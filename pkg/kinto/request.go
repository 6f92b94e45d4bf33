package kinto

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Request is an outbound request description: one value in, one request
// out. Builders and modifiers are pure transformations producing new
// values; dispatch and concurrency belong to the transport.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    []byte
}

func (r *Request) clone() *Request {
	headers := make([]Header, len(r.Headers))
	copy(headers, r.Headers)

	out := *r
	out.Headers = headers

	return &out
}

// WithHeader returns a copy of the request with one extra header.
func (r *Request) WithHeader(name, value string) *Request {
	out := r.clone()
	out.Headers = append(out.Headers, Header{Name: name, Value: value})

	return out
}

// WithIfMatch returns a copy guarded by the given last_modified
// timestamp: the server rejects the write with errno 114 if the resource
// changed since.
func (r *Request) WithIfMatch(lastModified int64) *Request {
	return r.WithHeader("If-Match", `"`+strconv.FormatInt(lastModified, 10)+`"`)
}

// WithIfNoneMatchAny returns a copy that only succeeds if the resource
// does not exist yet.
func (r *Request) WithIfNoneMatchAny() *Request {
	return r.WithHeader("If-None-Match", "*")
}

func newRequest(c *Client, method string, endpoint Endpoint, body []byte) *Request {
	headers := make([]Header, len(c.Headers))
	copy(headers, c.Headers)

	return &Request{
		Method:  method,
		URL:     ResolveURL(c.BaseURL, endpoint),
		Headers: headers,
		Body:    body,
	}
}

func marshalData(data interface{}) ([]byte, error) {
	body, err := json.Marshal(dataEnvelope{Data: data})
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return body, nil
}

// ServerInfoRequest builds a GET for the server root.
func ServerInfoRequest(c *Client) *Request {
	return newRequest(c, http.MethodGet, RootEndpoint{}, nil)
}

// GetRequest builds a GET for one item of the resource.
func GetRequest[T any](c *Client, res Resource[T], id string) *Request {
	return newRequest(c, http.MethodGet, res.ItemEndpoint(id), nil)
}

// GetListRequest builds a GET for the resource's plural endpoint.
func GetListRequest[T any](c *Client, res Resource[T]) *Request {
	return newRequest(c, http.MethodGet, res.ListEndpoint, nil)
}

// CreateRequest builds a POST against the plural endpoint with the body
// wrapped in the data envelope.
func CreateRequest[T any](c *Client, res Resource[T], data interface{}) (*Request, error) {
	body, err := marshalData(data)
	if err != nil {
		return nil, err
	}

	return newRequest(c, http.MethodPost, res.ListEndpoint, body), nil
}

// UpdateRequest builds a PATCH for one item with the body wrapped in the
// data envelope.
func UpdateRequest[T any](c *Client, res Resource[T], id string, data interface{}) (*Request, error) {
	body, err := marshalData(data)
	if err != nil {
		return nil, err
	}

	return newRequest(c, http.MethodPatch, res.ItemEndpoint(id), body), nil
}

// ReplaceRequest builds a PUT for one item with the body wrapped in the
// data envelope.
func ReplaceRequest[T any](c *Client, res Resource[T], id string, data interface{}) (*Request, error) {
	body, err := marshalData(data)
	if err != nil {
		return nil, err
	}

	return newRequest(c, http.MethodPut, res.ItemEndpoint(id), body), nil
}

// DeleteRequest builds a DELETE for one item.
func DeleteRequest[T any](c *Client, res Resource[T], id string) *Request {
	return newRequest(c, http.MethodDelete, res.ItemEndpoint(id), nil)
}

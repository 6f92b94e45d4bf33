package kinto

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// BatchOperation is one subrequest of a /batch call. Path is relative to
// the API root (e.g. "/buckets/blog/collections/posts/records").
type BatchOperation struct {
	Method  string            `json:"method,omitempty"`
	Path    string            `json:"path"`
	Body    interface{}       `json:"body,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// BatchDefaults are applied by the server to every subrequest that does
// not override the field itself.
type BatchDefaults struct {
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

type batchBody struct {
	Defaults *BatchDefaults   `json:"defaults,omitempty"`
	Requests []BatchOperation `json:"requests"`
}

// BatchResult is the outcome of one subrequest, in submission order.
type BatchResult struct {
	Status  int               `json:"status"`
	Path    string            `json:"path"`
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body"`
}

// Success reports whether the subrequest landed in the 2xx range.
func (r *BatchResult) Success() bool {
	return r.Status >= 200 && r.Status < 300
}

type batchResponseBody struct {
	Responses []BatchResult `json:"responses"`
}

// BatchRequest builds a POST /batch carrying the given subrequests.
func BatchRequest(c *Client, defaults *BatchDefaults, operations []BatchOperation) (*Request, error) {
	body, err := json.Marshal(batchBody{Defaults: defaults, Requests: operations})
	if err != nil {
		return nil, fmt.Errorf("encoding batch body: %w", err)
	}

	headers := make([]Header, len(c.Headers))
	copy(headers, c.Headers)

	return &Request{
		Method:  http.MethodPost,
		URL:     strings.TrimSuffix(c.BaseURL, "/") + "/batch",
		Headers: headers,
		Body:    body,
	}, nil
}

// DecodeBatchResponse interprets a /batch response into per-subrequest
// results. Subrequest failures do not fail the batch call itself; check
// each result's Success.
func DecodeBatchResponse(resp *Response) ([]BatchResult, error) {
	if !resp.success() {
		return nil, classifyFailure(resp)
	}

	var body batchResponseBody

	err := json.Unmarshal(resp.Body, &body)
	if err != nil {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("%v; body: %s", err, resp.Body),
		}
	}

	return body.Responses, nil
}

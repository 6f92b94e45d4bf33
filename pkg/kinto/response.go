package kinto

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Pagination headers on list responses.
const (
	NextPageHeader     = "Next-Page"
	TotalRecordsHeader = "Total-Records"
)

// Response is a raw HTTP response as delivered by the transport. A
// Response only exists when the server answered with an interpretable
// status line; transport failures surface as *NetworkError instead.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

func (r *Response) success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// classifyFailure turns a failure-status response into a typed error:
// a well-formed error body becomes a KintoError, anything else a
// ServerError carrying the parse failure and the raw body.
func classifyFailure(resp *Response) error {
	detail, err := ParseErrorDetail(resp.Body)
	if err != nil {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("%v; body: %s", err, resp.Body),
		}
	}

	return &KintoError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Detail:     *detail,
	}
}

// DecodeItemResponse interprets a single-item response: failure statuses
// are classified into KintoError/ServerError; success statuses are
// decoded with the resource's item decoder. A successful HTTP status does
// not guarantee a successful domain-level result, so a decode failure on
// a 2xx is still a ServerError.
func DecodeItemResponse[T any](res Resource[T], resp *Response) (T, error) {
	var zero T

	if !resp.success() {
		return zero, classifyFailure(resp)
	}

	value, err := res.DecodeItem(resp.Body)
	if err != nil {
		return zero, &ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("%v; body: %s", err, resp.Body),
		}
	}

	return value, nil
}

// DecodeServerInfoResponse interprets the server root response. Unlike
// object responses it carries no data envelope.
func DecodeServerInfoResponse(resp *Response) (*ServerInfo, error) {
	if !resp.success() {
		return nil, classifyFailure(resp)
	}

	var info ServerInfo

	err := json.Unmarshal(resp.Body, &info)
	if err != nil {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("%v; body: %s", err, resp.Body),
		}
	}

	return &info, nil
}

// DecodeListResponse interprets a plural-endpoint response into a fresh
// Pager: the decoded page plus the Next-Page and Total-Records headers.
// Total-Records missing or non-numeric reads as 0; Next-Page is carried
// verbatim.
func DecodeListResponse[T any](c *Client, res Resource[T], resp *Response) (*Pager[T], error) {
	if !resp.success() {
		return nil, classifyFailure(resp)
	}

	objects, err := res.DecodeList(resp.Body)
	if err != nil {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("%v; body: %s", err, resp.Body),
		}
	}

	total := 0
	if raw := resp.Headers.Get(TotalRecordsHeader); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			total = n
		}
	}

	return &Pager[T]{
		Client:     c,
		Objects:    objects,
		Total:      total,
		NextPage:   resp.Headers.Get(NextPageHeader),
		decodeList: res.DecodeList,
	}, nil
}

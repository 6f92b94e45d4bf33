package kinto

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter is a closed union of the server's filtering operators. Each
// variant translates to exactly one query parameter; operands are passed
// through uninterpreted.
type Filter interface {
	param() (key, value string)
}

// Equal matches records whose field equals the value.
type Equal struct {
	Field string
	Value string
}

func (f Equal) param() (string, string) {
	return f.Field, f.Value
}

// Min matches records whose field is greater than or equal to the value.
type Min struct {
	Field string
	Value string
}

func (f Min) param() (string, string) {
	return "min_" + f.Field, f.Value
}

// Max matches records whose field is less than or equal to the value.
type Max struct {
	Field string
	Value string
}

func (f Max) param() (string, string) {
	return "max_" + f.Field, f.Value
}

// LT matches records whose field is strictly less than the value.
type LT struct {
	Field string
	Value string
}

func (f LT) param() (string, string) {
	return "lt_" + f.Field, f.Value
}

// GT matches records whose field is strictly greater than the value.
type GT struct {
	Field string
	Value string
}

func (f GT) param() (string, string) {
	return "gt_" + f.Field, f.Value
}

// IN matches records whose field equals any of the values.
type IN struct {
	Field  string
	Values []string
}

func (f IN) param() (string, string) {
	return "in_" + f.Field, strings.Join(f.Values, ",")
}

// NOT matches records whose field differs from the value.
type NOT struct {
	Field string
	Value string
}

func (f NOT) param() (string, string) {
	return "not_" + f.Field, f.Value
}

// Like matches records whose field contains the value.
type Like struct {
	Field string
	Value string
}

func (f Like) param() (string, string) {
	return "like_" + f.Field, f.Value
}

// Since matches records modified strictly after the given timestamp.
type Since struct {
	Value string
}

func (f Since) param() (string, string) {
	return "_since", f.Value
}

// Before matches records modified strictly before the given timestamp.
type Before struct {
	Value string
}

func (f Before) param() (string, string) {
	return "_before", f.Value
}

// WithFilter returns a copy of the request with the filter's query
// parameter appended.
func (r *Request) WithFilter(f Filter) *Request {
	key, value := f.param()

	return r.WithParam(key, value)
}

// WithSort returns a copy sorted by the given keys. Direction is encoded
// by the caller with a leading "-" on descending keys.
func (r *Request) WithSort(keys ...string) *Request {
	return r.WithParam("_sort", strings.Join(keys, ","))
}

// WithLimit returns a copy limited to n results per page. The value is
// passed through uninterpreted; the server decides what to do with
// out-of-range limits.
func (r *Request) WithLimit(n int) *Request {
	return r.WithParam("_limit", strconv.Itoa(n))
}

// WithParam returns a copy of the request with one more query parameter
// appended after any already present. Duplicate keys are allowed and all
// occurrences are sent, so modifiers compose in any order without
// clobbering earlier ones.
//
// Pairs in the existing query string that do not contain exactly one "="
// are silently dropped. That lossy behavior is kept for wire
// compatibility with existing callers; parameters that entered through
// this function always survive round trips.
func (r *Request) WithParam(key, value string) *Request {
	out := r.clone()
	out.URL = addQueryParam(out.URL, key, value)

	return out
}

type queryPair struct {
	key   string
	value string
}

// addQueryParam rebuilds the URL's query string with one more pair
// appended last. Existing pairs are decoded and re-encoded so repeated
// calls are stable; spaces encode as "+" per the server's convention.
func addQueryParam(rawURL, key, value string) string {
	base, query, _ := strings.Cut(rawURL, "?")

	var pairs []queryPair

	if query != "" {
		for _, part := range strings.Split(query, "&") {
			if strings.Count(part, "=") != 1 {
				continue
			}

			k, v, _ := strings.Cut(part, "=")

			decodedKey, err := url.QueryUnescape(k)
			if err != nil {
				continue
			}

			decodedValue, err := url.QueryUnescape(v)
			if err != nil {
				continue
			}

			pairs = append(pairs, queryPair{key: decodedKey, value: decodedValue})
		}
	}

	pairs = append(pairs, queryPair{key: key, value: value})

	encoded := make([]string, 0, len(pairs))
	for _, p := range pairs {
		encoded = append(encoded, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}

	return base + "?" + strings.Join(encoded, "&")
}

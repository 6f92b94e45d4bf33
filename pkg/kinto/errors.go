package kinto

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorDetail is the documented Kinto error body:
// {"errno": <int>, "message": <string>, "code": <int>, "error": <string>}.
// The code field echoes the HTTP status; error is a short label.
type ErrorDetail struct {
	Errno   int    `json:"errno"   yaml:"errno"`
	Message string `json:"message" yaml:"message"`
	Code    int    `json:"code"    yaml:"code"`
	Error   string `json:"error"   yaml:"error"`
}

// KintoError is a failure status whose body is a well-formed ErrorDetail.
type KintoError struct {
	StatusCode int
	Status     string
	Detail     ErrorDetail
}

// Error implements the error interface.
func (e *KintoError) Error() string {
	return fmt.Sprintf("%s: %s (errno: %d)", e.Detail.Error, e.Detail.Message, e.Detail.Errno)
}

// ServerError is an HTTP response whose body could not be interpreted as
// the expected shape: either a failure status with a non-conforming error
// body, or a success status whose payload failed to decode.
type ServerError struct {
	StatusCode int
	Status     string
	Message    string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Status, e.Message)
}

// NetworkError is a transport-level failure: no interpretable HTTP
// response was received at all.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Documented server errno values.
const (
	ErrnoMissingAuthToken      = 104
	ErrnoInvalidAuthToken      = 105
	ErrnoBadJSON               = 106
	ErrnoInvalidParameters     = 107
	ErrnoMissingParameters     = 108
	ErrnoInvalidPostedData     = 109
	ErrnoMissingResource       = 110
	ErrnoMissingContentLength  = 111
	ErrnoRequestTooLarge       = 112
	ErrnoModifiedMeanwhile     = 114
	ErrnoMethodNotAllowed      = 115
	ErrnoVersionNotAvailable   = 116
	ErrnoClientReachedCapacity = 117
	ErrnoForbidden             = 121
	ErrnoConstraintViolated    = 122
	ErrnoBackend               = 201
	ErrnoServiceDeprecated     = 202
	ErrnoUndefined             = 999
)

// Static errors that can be wrapped with context.
var (
	ErrBaseURLRequired  = errors.New("base URL is required")
	ErrConfigRequired   = errors.New("config is required")
	ErrNoNextPage       = errors.New("no next page")
	ErrEmptyBody        = errors.New("empty response body")
	ErrMissingDataField = errors.New("response body is missing the data field")
	ErrNotErrorBody     = errors.New("body does not match the Kinto error format")
)

// IsNotFound checks if the error reports a missing resource.
func IsNotFound(err error) bool {
	return hasErrno(err, ErrnoMissingResource)
}

// IsUnauthorized checks if the error reports a missing or invalid
// authentication token.
func IsUnauthorized(err error) bool {
	return hasErrno(err, ErrnoMissingAuthToken) || hasErrno(err, ErrnoInvalidAuthToken)
}

// IsForbidden checks if the error reports insufficient permissions.
func IsForbidden(err error) bool {
	return hasErrno(err, ErrnoForbidden)
}

// IsModifiedMeanwhile checks if the error reports a concurrency-control
// conflict (the resource changed since the timestamp in If-Match).
func IsModifiedMeanwhile(err error) bool {
	return hasErrno(err, ErrnoModifiedMeanwhile)
}

func hasErrno(err error, errno int) bool {
	kintoErr := &KintoError{}
	if errors.As(err, &kintoErr) {
		return kintoErr.Detail.Errno == errno
	}

	return false
}

// ParseErrorDetail parses a server error body. The body must carry the
// full documented shape; anything else is rejected so the caller can fall
// back to a ServerError classification.
func ParseErrorDetail(data []byte) (*ErrorDetail, error) {
	var detail ErrorDetail

	err := json.Unmarshal(data, &detail)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error detail: %w", err)
	}

	if detail.Errno == 0 && detail.Code == 0 {
		return nil, ErrNotErrorBody
	}

	return &detail, nil
}

package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	errEmptyResponse = errors.New("empty response")
)

// RequestError is a non-2xx response.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// newRequestError picks the message: body text, then status text, then
// "HTTP <code>". status is the response status line, e.g. "404 Not Found".
func newRequestError(code int, status string, body []byte) *RequestError {
	msg := string(body)
	if msg == "" {
		msg = strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", code)
	}
	return &RequestError{StatusCode: code, Message: msg}
}

// ParseError is a 2xx response whose body is not the expected JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid JSON response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

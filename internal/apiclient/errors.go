package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/felixgeelhaar/rxclient/internal/domain"
)

var (
	// ErrBinaryBody is returned when a blob response is decoded as JSON
	ErrBinaryBody = errors.New("binary response cannot be decoded")
	// ErrRateLimited is returned when the client-side limiter rejects a call
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Error is a backend response with a failing status
type Error struct {
	Client     string
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       []byte
}

func newError(resp *Response) *Error {
	return &Error{
		Client:     resp.Client,
		Method:     resp.Method,
		Path:       resp.Path,
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.Body),
		Body:       resp.Body,
	}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s %s: status %d: %s", e.Client, e.Method, e.Path, e.StatusCode, msg)
}

// Is maps status codes onto the domain sentinels
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrConflict:
		return e.StatusCode == http.StatusConflict
	case domain.ErrInvalidInput:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case domain.ErrInternalError:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// errorMessage pulls a human readable message out of an error envelope
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return ""
	}
	for _, field := range []string{"message", "error"} {
		if v := res.Get(field); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

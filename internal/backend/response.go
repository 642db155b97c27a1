package backend

import (
	"fmt"
	"net/http"

	"github.com/hay-kot/roomprobe/internal/core/inspect"
)

// Response is a fully read HTTP response.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

// OK reports whether the backend answered 200.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Err returns a StatusError for any status other than 200.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{
		Method:     r.Method,
		Path:       r.Path,
		StatusCode: r.StatusCode,
		Body:       string(r.Body),
	}
}

// JSON decodes the body into generic values.
func (r *Response) JSON() (any, error) {
	v, err := inspect.Decode(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	return v, nil
}

// StatusError is returned for responses other than 200.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrHTTP matches every *HTTPError through errors.Is.
	ErrHTTP = errors.New("http request failed")

	// ErrDataNotFound is returned when the prefetched script or one of the
	// expected metadata fields is missing.
	ErrDataNotFound = errors.New("data not found")

	// ErrParse is returned when the prefetched payload is not valid JSON or
	// does not have the expected shape.
	ErrParse = errors.New("failed to parse data")
)

// HTTPError reports a response with a non-success status code.
type HTTPError struct {
	Url        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("status code of GET request to %q is %v", e.Url, e.Status)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

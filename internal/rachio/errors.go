package rachio

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist on the Rachio side
	ErrNotFound = errors.New("not found")
	// ErrMissingConfiguration indicates the client was created without a base URL or API key
	ErrMissingConfiguration = errors.New("missing configuration")
)

// HTTPError is returned when the Rachio API responds with a non-2xx status code
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

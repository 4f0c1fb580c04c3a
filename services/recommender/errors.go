package recommender

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is matched by an *APIError carrying a 404 status.
var ErrNotFound = errors.New("recommender: resource not found")

// APIError is returned for any non-2xx response from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s - %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrMalformedResponse is returned when a 2xx body fails schema checks.
	ErrMalformedResponse = errors.New("api: malformed response")
)

// StatusError is a non-2xx reply from the API.
type StatusError struct {
	Method string
	Path   string
	Status string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s %s: %s: %s", strings.ToLower(e.Method), e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("api %s %s: %s", strings.ToLower(e.Method), e.Path, e.Status)
}

// IsUnauthorized reports whether err is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// newStatusError reads a bounded amount of the body looking for the
// human-readable message DRF and django-oauth-toolkit put in error replies.
func newStatusError(method, path string, resp *http.Response) *StatusError {
	se := &StatusError{Method: method, Path: path, Status: resp.Status, Code: resp.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var body map[string]any
	if json.Unmarshal(b, &body) != nil {
		return se
	}
	for _, k := range []string{"detail", "message", "error_description", "error"} {
		if s, ok := body[k].(string); ok && s != "" {
			se.Detail = s
			return se
		}
	}
	// DRF validation errors: {"field": ["msg", ...]}
	for field, v := range body {
		if msgs, ok := v.([]any); ok && len(msgs) > 0 {
			if s, ok := msgs[0].(string); ok {
				se.Detail = field + ": " + s
				return se
			}
		}
	}
	return se
}

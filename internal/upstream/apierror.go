package upstream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIStatusError is a non-2xx response from the core API
type APIStatusError struct {
	StatusCode int
	Method     string
	URL        string
	Detail     string
}

// Error implements the error interface
func (e *APIStatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream returned %d for %s %s: %s", e.StatusCode, e.Method, e.URL, e.Detail)
	}
	return fmt.Sprintf("upstream returned %d for %s %s", e.StatusCode, e.Method, e.URL)
}

// IsNotFound reports whether the upstream responded 404
func (e *APIStatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict reports whether the upstream responded 409
func (e *APIStatusError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsUnauthorized reports whether the upstream responded 401 or 403
func (e *APIStatusError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// newStatusError builds an APIStatusError from a response, pulling the
// "detail" field out of DRF-style error bodies when present.
func newStatusError(resp *http.Response, method string) *APIStatusError {
	e := &APIStatusError{
		StatusCode: resp.StatusCode,
		Method:     method,
		URL:        resp.Request.URL.String(),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(body) == 0 {
		return e
	}

	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		e.Detail = parsed.Detail
	} else {
		e.Detail = string(body)
	}

	return e
}

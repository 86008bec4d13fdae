package source

import (
	"errors"
	"fmt"
	"net/http"

	"nathanbeddoewebdev/donorlens/internal/domain"
)

// NetworkError means no HTTP response was received for a query.
type NetworkError struct {
	Query string
	Err   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("query %s: request failed: %v", e.Query, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError means the backend answered with a 4xx or 5xx status.
type StatusError struct {
	Query   string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("query %s: status %d", e.Query, e.Code)
	}
	return fmt.Sprintf("query %s: status %d: %s", e.Query, e.Code, e.Message)
}

// Unwrap maps well-known status codes onto the shared domain sentinels so
// callers can use errors.Is without inspecting codes.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	}
	return nil
}

// ParseError means the response body was not valid JSON.
type ParseError struct {
	Query string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query %s: invalid JSON response: %v", e.Query, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reason returns a short classification label for err: "network", "status",
// "parse", or "unknown". Used for logs, metrics, and audit entries.
func Reason(err error) string {
	var netErr *NetworkError
	var statusErr *StatusError
	var parseErr *ParseError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "unknown"
	}
}

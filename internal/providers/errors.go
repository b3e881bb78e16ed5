package providers

import (
	"errors"
	"fmt"
	"net/http"
)

type rateLimitError struct {
	body string
}

func (e *rateLimitError) Error() string { return "rate limited" }

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// APIError is a non-success response that is neither throttling nor an
// authentication failure.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// IsRateLimit reports whether err is a rate-limit classified failure.
func IsRateLimit(err error) bool {
	var rl *rateLimitError
	return errors.As(err, &rl)
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// StatusError maps a non-success HTTP status to a classified error.
func StatusError(status int, body string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &rateLimitError{body: body}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &authError{message: body}
	default:
		return &APIError{StatusCode: status, Body: body}
	}
}

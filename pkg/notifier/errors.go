package notifier

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelNotConfigured indicates the channel is missing its credentials
	ErrChannelNotConfigured = errors.New("notification channel not configured")

	// ErrSendRequest indicates the request never got a response
	ErrSendRequest = errors.New("failed to send notification request")
)

// HTTPError is a webhook response with an unexpected status code
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP request failed: %d %s, response: %s", e.StatusCode, e.Status, e.Body)
}

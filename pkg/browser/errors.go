package browser

import "errors"

var (
	// ErrWaitTimeout indicates a condition did not hold before its deadline
	ErrWaitTimeout = errors.New("wait deadline exceeded")

	// ErrElementNotFound indicates a selector matched nothing
	ErrElementNotFound = errors.New("element not found")

	// ErrBrowserStart indicates the browser process could not be launched
	ErrBrowserStart = errors.New("failed to start browser")

	// ErrSessionClosed indicates the session was used after Close
	ErrSessionClosed = errors.New("browser session closed")
)

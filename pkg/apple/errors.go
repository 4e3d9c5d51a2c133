package apple

import "errors"

var (
	// ErrTriggerNotFound is fatal: the availability button never appeared
	ErrTriggerNotFound = errors.New("could not find 'Check availability' button")

	// ErrFieldRead marks a field whose extraction panicked
	ErrFieldRead = errors.New("field extraction failed")
)

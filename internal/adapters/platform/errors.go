package platform

import "errors"

// Sentinel kinds for platform errors.
var (
	// ErrRemote wraps any transport or query failure from the data
	// platform. The platform's own message is passed through verbatim
	// and surfaced to the user; nothing is retried.
	ErrRemote = errors.New("remote failure")
	// ErrNotFound marks a get-by-id miss.
	ErrNotFound = errors.New("drill not found")
)

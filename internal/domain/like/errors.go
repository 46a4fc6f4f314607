package like

import "errors"

var (
	// ErrConcurrentToggle is returned when two toggles for the same
	// (post, user) pair race and the unique index rejects the loser.
	// The caller can simply retry.
	ErrConcurrentToggle = errors.New("like toggled concurrently, retry")

	ErrPostNotFound = errors.New("post not found")
)

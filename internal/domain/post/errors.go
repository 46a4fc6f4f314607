package post

import "errors"

var (
	// ErrPostNotFound covers missing posts, soft-deleted posts, and
	// mutations attempted by a non-creator. The three cases are
	// deliberately indistinguishable to callers.
	ErrPostNotFound = errors.New("post not found")

	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)

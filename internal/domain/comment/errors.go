package comment

import "errors"

var (
	// ErrCommentNotFound covers missing comments and mutations attempted
	// by a non-author. Callers cannot tell the two apart.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrParentNotFound means the parent id does not resolve within the
	// same post. Replying across posts is indistinguishable from
	// replying to a deleted comment.
	ErrParentNotFound = errors.New("parent comment not found")

	ErrEmptyContent   = errors.New("comment content must not be empty")
	ErrContentTooLong = errors.New("comment content exceeds maximum length")
)

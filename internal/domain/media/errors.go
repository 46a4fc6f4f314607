package media

import "errors"

var (
	ErrMediaNotFound  = errors.New("media not found")
	ErrEmptyFile      = errors.New("file is empty")
	ErrFileTooLarge   = errors.New("file exceeds maximum allowed size")
	ErrMimeNotAllowed = errors.New("file type is not allowed")
)

package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrBadSignature = errors.New("invalid or expired signature")
	ErrInvalidKey   = errors.New("invalid blob key")
)

// Store is durable object storage addressed by opaque keys. It is not
// transactional with the record store; callers own cross-store cleanup.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	SignedURL(key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

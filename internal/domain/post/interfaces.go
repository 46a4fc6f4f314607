package post

import (
	"context"
	"mime/multipart"

	"pronet/internal/domain/account"
	"pronet/internal/domain/like"
	"pronet/internal/domain/media"
)

// Registrar is the media registrar boundary the coordinator drives.
type Registrar interface {
	Upload(ctx context.Context, files []*multipart.FileHeader, ownerID int64, ownerKind account.Kind) ([]string, error)
	Delete(ctx context.Context, ids []string) error
	Resolve(ctx context.Context, ids []string) ([]*media.Media, error)
	URL(key string) (string, error)
}

// QuotaGate decides whether an account may create another post.
type QuotaGate interface {
	MayCreatePost(ctx context.Context, accountID int64) error
}

// AccountResolver validates creators and maintains their post counter.
type AccountResolver interface {
	GetByID(ctx context.Context, id int64) (*account.Account, error)
	IncrementCreatedPosts(ctx context.Context, id int64) error
}

// LikeLister denormalizes the like list onto post views.
type LikeLister interface {
	ListByPost(ctx context.Context, postID string) ([]*like.Like, error)
}

package comment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pronet/internal/domain/account"
	"pronet/internal/domain/post"
)

// PostReader resolves the post a comment hangs off. Soft-deleted posts
// read as missing.
type PostReader interface {
	GetByID(ctx context.Context, id string) (*post.Post, error)
}

// AccountReader supplies the author name snapshot.
type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*account.Account, error)
}

// Notifier delivers comment events to the post creator. Delivery is
// fire-and-forget; a nil Notifier disables it.
type Notifier interface {
	PostCommented(recipientID, actorID int64, postID, commentID string)
}

type Service struct {
	repo     Repository
	posts    PostReader
	accounts AccountReader
	notifier Notifier
}

func NewService(repo Repository, posts PostReader, accounts AccountReader, notifier Notifier) *Service {
	return &Service{repo: repo, posts: posts, accounts: accounts, notifier: notifier}
}

// Create adds a comment, as a root when parentID is nil or as a reply
// otherwise. A reply inherits its parent's ancestry plus the parent
// itself, and the parent must belong to the same post. The post creator
// is notified unless they are the commenter.
func (s *Service) Create(ctx context.Context, postID string, authorID int64, content string, parentID *string) (*Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	author, err := s.accounts.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	var path Path
	if parentID != nil {
		parent, err := s.repo.GetByID(ctx, *parentID)
		if err != nil || parent.PostID != postID {
			return nil, ErrParentNotFound
		}
		path = ChildOf(parent.Path, parent.ID)
	}

	c := &Comment{
		ID:         uuid.New().String(),
		PostID:     postID,
		ParentID:   parentID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Content:    content,
		Path:       path,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.notifier != nil && p.CreatorID != authorID {
		s.notifier.PostCommented(p.CreatorID, authorID, postID, c.ID)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, authorID int64, content string) (*Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContent(ctx, id, authorID, content); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the comment and its whole subtree. Only the author of
// the root of the subtree is checked; replies by others go with it.
func (s *Service) Delete(ctx context.Context, id string, authorID int64) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AuthorID != authorID {
		return ErrCommentNotFound
	}
	return s.repo.DeleteSubtree(ctx, c)
}

func (s *Service) Get(ctx context.Context, id string) (*Comment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPost(ctx context.Context, postID string, page, limit int) ([]*Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByPost(ctx, postID, (page-1)*limit, limit)
}

func (s *Service) Replies(ctx context.Context, parentID string) ([]*Comment, error) {
	if _, err := s.repo.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	return s.repo.Replies(ctx, parentID)
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if len(content) > MaxContentLen {
		return ErrContentTooLong
	}
	return nil
}

package like

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostChecker reports whether a post is visible. Declared here so the
// post package can depend on likes without the reverse import.
type PostChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Notifier delivers like events to interested parties. Delivery is
// fire-and-forget; a nil Notifier disables it.
type Notifier interface {
	PostLiked(postID string, likerID int64)
}

type Service struct {
	db       *gorm.DB
	posts    PostChecker
	notifier Notifier
}

func NewService(db *gorm.DB, posts PostChecker, notifier Notifier) *Service {
	return &Service{db: db, posts: posts, notifier: notifier}
}

// Toggle flips the caller's like on a post and reports the resulting
// state. The unique index arbitrates races: the losing insert of two
// concurrent toggles comes back as ErrConcurrentToggle rather than a
// silent double-like.
func (s *Service) Toggle(ctx context.Context, postID string, userID int64) (liked bool, err error) {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrPostNotFound
	}

	res := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	l := &Like{ID: uuid.New().String(), PostID: postID, UserID: userID}
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		if isUniqueConstraintError(err) {
			return false, ErrConcurrentToggle
		}
		return false, err
	}

	if s.notifier != nil {
		s.notifier.PostLiked(postID, userID)
	}
	return true, nil
}

func (s *Service) ListByPost(ctx context.Context, postID string) ([]*Like, error) {
	var likes []*Like
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&likes).Error
	return likes, err
}

func (s *Service) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

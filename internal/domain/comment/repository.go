package comment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByPost(ctx context.Context, postID string, offset, limit int) ([]*Comment, error)
	Replies(ctx context.Context, parentID string) ([]*Comment, error)
	// UpdateContent is scoped to (id, author); zero rows affected
	// surfaces as ErrCommentNotFound.
	UpdateContent(ctx context.Context, id string, authorID int64, content string) error
	// DeleteSubtree removes the comment and every descendant in one
	// transaction. Descendants are matched by path prefix.
	DeleteSubtree(ctx context.Context, c *Comment) error
	CountByPost(ctx context.Context, postID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByPost(ctx context.Context, postID string, offset, limit int) ([]*Comment, error) {
	var comments []*Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *repository) Replies(ctx context.Context, parentID string) ([]*Comment, error) {
	var comments []*Comment
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) UpdateContent(ctx context.Context, id string, authorID int64, content string) error {
	res := r.db.WithContext(ctx).
		Model(&Comment{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(map[string]any{
			"content":    content,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *repository) DeleteSubtree(ctx context.Context, c *Comment) error {
	// Every descendant's path starts with this comment's path extended
	// by its id. Ids are uuids of fixed shape, but the "/%" variant is
	// still matched separately so an id never prefix-matches another.
	subtree := ChildOf(c.Path, c.ID).String()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", c.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.
			Where("post_id = ? AND (path = ? OR path LIKE ?)", c.PostID, subtree, subtree+"/%").
			Delete(&Comment{}).Error
	})
}

func (r *repository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

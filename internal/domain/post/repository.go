package post

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// Create persists the post and its media join rows together, so a
	// reader never sees a post whose media references are half-written.
	Create(ctx context.Context, p *Post, mediaIDs []string) error
	GetByID(ctx context.Context, id string) (*Post, error)
	MediaIDs(ctx context.Context, postID string) ([]string, error)
	List(ctx context.Context, offset, limit int) ([]*Post, error)
	ListByCreator(ctx context.Context, creatorID int64, offset, limit int) ([]*Post, error)
	// UpdateDescription is scoped to (id, creator, not deleted); zero
	// rows affected surfaces as ErrPostNotFound.
	UpdateDescription(ctx context.Context, id string, creatorID int64, description string) error
	SoftDelete(ctx context.Context, id string, creatorID int64) error
	Exists(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Post, mediaIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		for i, mediaID := range mediaIDs {
			row := &PostMedia{PostID: p.ID, MediaID: mediaID, Position: i}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Post, error) {
	var p Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) MediaIDs(ctx context.Context, postID string) ([]string, error) {
	var rows []PostMedia
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.MediaID)
	}
	return ids, nil
}

func (r *repository) List(ctx context.Context, offset, limit int) ([]*Post, error) {
	var posts []*Post
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *repository) ListByCreator(ctx context.Context, creatorID int64, offset, limit int) ([]*Post, error) {
	var posts []*Post
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND is_deleted = ?", creatorID, false).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *repository) UpdateDescription(ctx context.Context, id string, creatorID int64, description string) error {
	res := r.db.WithContext(ctx).
		Model(&Post{}).
		Where("id = ? AND creator_id = ? AND is_deleted = ?", id, creatorID, false).
		Updates(map[string]any{
			"description": description,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string, creatorID int64) error {
	res := r.db.WithContext(ctx).
		Model(&Post{}).
		Where("id = ? AND creator_id = ? AND is_deleted = ?", id, creatorID, false).
		Updates(map[string]any{
			"is_deleted": true,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByAccount(ctx context.Context, accountID int64, offset, limit int) ([]*Notification, error)
	UnreadCount(ctx context.Context, accountID int64) (int64, error)
	MarkRead(ctx context.Context, id, accountID int64) error
	MarkAllRead(ctx context.Context, accountID int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByAccount(ctx context.Context, accountID int64, offset, limit int) ([]*Notification, error) {
	var notifications []*Notification
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) UnreadCount(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("account_id = ? AND is_read = ?", accountID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, id, accountID int64) error {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Updates(map[string]any{
			"is_read": true,
			"read_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(ctx context.Context, accountID int64) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("account_id = ? AND is_read = ?", accountID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

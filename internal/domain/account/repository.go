package account

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, a *Account) error
	// IncrementCreatedPosts bumps the lifetime post counter. Issued as a
	// single UPDATE expression so concurrent creates never lose updates.
	IncrementCreatedPosts(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Account, error) {
	var a Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, a *Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) IncrementCreatedPosts(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		UpdateColumn("created_post_count", gorm.Expr("created_post_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

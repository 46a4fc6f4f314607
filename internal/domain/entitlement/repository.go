package entitlement

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	GetActiveByAccountID(ctx context.Context, accountID int64) (*Entitlement, error)
	Create(ctx context.Context, e *Entitlement) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActiveByAccountID(ctx context.Context, accountID int64) (*Entitlement, error) {
	var e Entitlement
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, StatusActive).
		Order("created_at DESC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Create(ctx context.Context, e *Entitlement) error {
	return r.db.WithContext(ctx).Create(e).Error
}

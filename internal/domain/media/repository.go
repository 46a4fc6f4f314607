package media

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, m *Media) error
	GetByID(ctx context.Context, id string) (*Media, error)
	// GetByIDs returns records for the given ids preserving input order.
	// Missing ids are reported as ErrMediaNotFound.
	GetByIDs(ctx context.Context, ids []string) ([]*Media, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Media) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Media, error) {
	var m Media
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]*Media, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []*Media
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]*Media, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}

	out := make([]*Media, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return nil, ErrMediaNotFound
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Media{}).Error
}

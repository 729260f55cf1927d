package repository

import (
	"context"
	"pixer-marketplace/internal/model"

	"gorm.io/gorm"
)

type AcquisitionRepository interface {
	CreateMany(ctx context.Context, tx *gorm.DB, rows []*model.AcquiredProduct) error
	ListByUser(ctx context.Context, userID string) ([]*model.AcquiredProduct, error)
}

type acquisitionRepoImpl struct {
	db *gorm.DB
}

func NewAcquisitionRepository(db *gorm.DB) AcquisitionRepository {
	return &acquisitionRepoImpl{
		db: db,
	}
}

func (r *acquisitionRepoImpl) CreateMany(ctx context.Context, tx *gorm.DB, rows []*model.AcquiredProduct) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&rows).Error
}

func (r *acquisitionRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.AcquiredProduct, error) {
	var rows []*model.AcquiredProduct
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("acquired_at DESC").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

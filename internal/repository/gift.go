package repository

import (
	"context"
	"pixer-marketplace/internal/model"

	"gorm.io/gorm"
)

type GiftRepository interface {
	Create(ctx context.Context, tx *gorm.DB, gift *model.Gift) error
	ListByUser(ctx context.Context, userID string) ([]*model.Gift, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type giftRepoImpl struct {
	db *gorm.DB
}

func NewGiftRepository(db *gorm.DB) GiftRepository {
	return &giftRepoImpl{
		db: db,
	}
}

func (r *giftRepoImpl) Create(ctx context.Context, tx *gorm.DB, gift *model.Gift) error {
	return tx.WithContext(ctx).Create(gift).Error
}

func (r *giftRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Gift, error) {
	var gifts []*model.Gift
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("received_at DESC").
		Find(&gifts).Error

	if err != nil {
		return nil, err
	}

	return gifts, nil
}

func (r *giftRepoImpl) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Gift{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count, err
}

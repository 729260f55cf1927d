package repository

import (
	"context"
	"time"

	"pixer-marketplace/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, userID string) (*model.Profile, error)
	// Ensure creates the profile row on first sight of a token; existing
	// rows are left untouched.
	Ensure(ctx context.Context, profile *model.Profile) error
	SetFirstOrderFlag(ctx context.Context, tx *gorm.DB, userID string) error
}

type profileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepoImpl{
		db: db,
	}
}

func (r *profileRepoImpl) FindByID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&profile).Error

	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepoImpl) Ensure(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(profile).Error
}

func (r *profileRepoImpl) SetFirstOrderFlag(ctx context.Context, tx *gorm.DB, userID string) error {
	result := tx.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"has_made_first_order": true,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"context"
	"pixer-marketplace/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanRepository interface {
	Seed(ctx context.Context) error
	List(ctx context.Context) ([]*model.SubscriptionPlan, error)
}

type planRepoImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepoImpl{
		db: db,
	}
}

func (r *planRepoImpl) Seed(ctx context.Context) error {
	plans := []model.SubscriptionPlan{
		{Name: "standard", Price: decimal.NewFromFloat(299.00), Description: "Unlimited standard catalog downloads.", Features: "Unlimited downloads\nStandard catalog\nEmail support"},
		{Name: "premium", Price: decimal.NewFromFloat(599.00), Description: "Everything, including premium drops.", Features: "Unlimited downloads\nFull catalog\nEarly access\nPriority support", Popular: true},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&plans).Error
}

func (r *planRepoImpl) List(ctx context.Context) ([]*model.SubscriptionPlan, error) {
	var plans []*model.SubscriptionPlan
	err := r.db.WithContext(ctx).
		Order("price ASC").
		Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

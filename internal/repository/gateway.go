package repository

import (
	"context"
	"pixer-marketplace/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GatewayRepository interface {
	Seed(ctx context.Context) error
	FindByName(ctx context.Context, name string) (*model.PaymentGateway, error)
	ListEnabled(ctx context.Context) ([]*model.PaymentGateway, error)
}

type gatewayRepoImpl struct {
	db *gorm.DB
}

func NewGatewayRepository(db *gorm.DB) GatewayRepository {
	return &gatewayRepoImpl{
		db: db,
	}
}

func (r *gatewayRepoImpl) Seed(ctx context.Context) error {
	gateways := []model.PaymentGateway{
		{Name: "razorpay", IsEnabled: false},
		{Name: "phonepe", IsEnabled: false},
		{Name: "card", IsEnabled: false},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&gateways).Error
}

func (r *gatewayRepoImpl) FindByName(ctx context.Context, name string) (*model.PaymentGateway, error) {
	var gateway model.PaymentGateway
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&gateway).Error

	if err != nil {
		return nil, err
	}

	return &gateway, nil
}

func (r *gatewayRepoImpl) ListEnabled(ctx context.Context) ([]*model.PaymentGateway, error) {
	var gateways []*model.PaymentGateway
	err := r.db.WithContext(ctx).
		Where("is_enabled = ?", true).
		Find(&gateways).Error

	if err != nil {
		return nil, err
	}

	return gateways, nil
}

package repository

import (
	"context"
	"pixer-marketplace/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID int64) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []int64) ([]*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: 1, Title: "Minimalist Dashboard UI Kit", Author: "Elena Rodriguez", Price: decimal.NewFromFloat(39.00), Image: "https://picsum.photos/seed/prod1/600/400", Category: "UI Kits", Description: "A clean dashboard kit with 120 components.", IsNew: true},
		{ID: 2, Title: "Procreate Brush Bundle", Author: "Kenji Sato", Price: decimal.NewFromFloat(65.00), Image: "https://picsum.photos/seed/prod2/600/400", Category: "Brushes", Description: "200 textured brushes for digital painting."},
		{ID: 3, Title: "Portfolio Website Template", Author: "Maya Chen", Price: decimal.NewFromFloat(24.00), Image: "https://picsum.photos/seed/prod3/600/400", Category: "Templates", Description: "A stunning template to showcase your work."},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []int64) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

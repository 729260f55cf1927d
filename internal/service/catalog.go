package service

import (
	"context"

	"pixer-marketplace/internal/model"
	"pixer-marketplace/internal/repository"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	ListPlans(ctx context.Context) ([]*model.SubscriptionPlan, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
	planRepo    repository.PlanRepository
}

func NewCatalogService(productRepo repository.ProductRepository, planRepo repository.PlanRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
		planRepo:    planRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogServiceImpl) ListPlans(ctx context.Context) ([]*model.SubscriptionPlan, error) {
	return s.planRepo.List(ctx)
}

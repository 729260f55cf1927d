package service

import (
	"context"
	"fmt"

	"pixer-marketplace/internal/cart"
	"pixer-marketplace/internal/dto"
	"pixer-marketplace/internal/repository"
)

type CartService interface {
	Get(ctx context.Context, userID string) (*dto.CartView, error)
	AddItem(ctx context.Context, userID string, productID int64) (*dto.CartView, error)
	UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) (*dto.CartView, error)
	Remove(ctx context.Context, userID string, productID int64) (*dto.CartView, error)
	Clear(ctx context.Context, userID string) (*dto.CartView, error)
}

type cartServiceImpl struct {
	carts       *cart.Manager
	productRepo repository.ProductRepository
	profileRepo repository.ProfileRepository
}

func NewCartService(carts *cart.Manager, productRepo repository.ProductRepository, profileRepo repository.ProfileRepository) CartService {
	return &cartServiceImpl{
		carts:       carts,
		productRepo: productRepo,
		profileRepo: profileRepo,
	}
}

func (s *cartServiceImpl) Get(ctx context.Context, userID string) (*dto.CartView, error) {
	return s.view(ctx, userID)
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, productID int64) (*dto.CartView, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	s.carts.For(userID).Add(cart.Product{
		ID:    product.ID,
		Title: product.Title,
		Price: product.Price,
		Image: product.Image,
	})
	return s.view(ctx, userID)
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) (*dto.CartView, error) {
	s.carts.For(userID).UpdateQuantity(productID, quantity)
	return s.view(ctx, userID)
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID string, productID int64) (*dto.CartView, error) {
	s.carts.For(userID).Remove(productID)
	return s.view(ctx, userID)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) (*dto.CartView, error) {
	s.carts.For(userID).Clear()
	return s.view(ctx, userID)
}

func (s *cartServiceImpl) view(ctx context.Context, userID string) (*dto.CartView, error) {
	snapshot := s.carts.For(userID).Snapshot()

	subscribed := false
	if profile, err := s.profileRepo.FindByID(ctx, userID); err == nil {
		subscribed = profile.Subscribed()
	}

	return &dto.CartView{
		Items:    itemViews(snapshot),
		Subtotal: snapshot.Subtotal(subscribed).StringFixed(2),
	}, nil
}

package service

import (
	"context"
	"fmt"

	"pixer-marketplace/internal/dto"
	"pixer-marketplace/internal/model"
	"pixer-marketplace/internal/repository"
)

type MeResponse struct {
	Profile          dto.ProfileView          `json:"profile"`
	AcquiredProducts []*model.AcquiredProduct `json:"acquired_products"`
	Gifts            []*model.Gift            `json:"gifts"`
}

type UserService interface {
	EnsureProfile(ctx context.Context, userID, email, name string) error
	Me(ctx context.Context, userID string) (*MeResponse, error)
}

type userServiceImpl struct {
	profileRepo     repository.ProfileRepository
	acquisitionRepo repository.AcquisitionRepository
	giftRepo        repository.GiftRepository
}

func NewUserService(
	profileRepo repository.ProfileRepository,
	acquisitionRepo repository.AcquisitionRepository,
	giftRepo repository.GiftRepository,
) UserService {
	return &userServiceImpl{
		profileRepo:     profileRepo,
		acquisitionRepo: acquisitionRepo,
		giftRepo:        giftRepo,
	}
}

func (s *userServiceImpl) EnsureProfile(ctx context.Context, userID, email, name string) error {
	return s.profileRepo.Ensure(ctx, &model.Profile{
		ID:               userID,
		Email:            email,
		FullName:         name,
		Username:         name,
		Role:             "user",
		SubscriptionPlan: model.PlanNone,
	})
}

func (s *userServiceImpl) Me(ctx context.Context, userID string) (*MeResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	acquired, err := s.acquisitionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list acquired products: %w", err)
	}

	gifts, err := s.giftRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}

	return &MeResponse{
		Profile: dto.ProfileView{
			ID:                profile.ID,
			Email:             profile.Email,
			FullName:          profile.FullName,
			Username:          profile.Username,
			Role:              profile.Role,
			SubscriptionPlan:  string(profile.SubscriptionPlan),
			HasMadeFirstOrder: profile.HasMadeFirstOrder,
		},
		AcquiredProducts: acquired,
		Gifts:            gifts,
	}, nil
}

package services

import (
	"context"
	"fmt"

	"turf-booking/internal/status"
	"turf-booking/internal/store"
	"turf-booking/models"
)

// CommunityService manages the curated community group directory.
type CommunityService struct {
	groups store.GroupStore
}

func NewCommunityService(groups store.GroupStore) *CommunityService {
	return &CommunityService{groups: groups}
}

func (s *CommunityService) Create(ctx context.Context, g *models.CommunityGroup) (*models.CommunityGroup, error) {
	if g.Title == "" || g.GroupLink == "" {
		return nil, fmt.Errorf("%w: title and groupLink are required", status.ErrValidation)
	}
	return s.groups.Create(ctx, g)
}

func (s *CommunityService) Get(ctx context.Context, id string) (*models.CommunityGroup, error) {
	if id == "" {
		return nil, status.ErrValidation
	}
	return s.groups.FindByID(ctx, id)
}

func (s *CommunityService) List(ctx context.Context) ([]*models.CommunityGroup, error) {
	return s.groups.List(ctx)
}

func (s *CommunityService) Update(ctx context.Context, g *models.CommunityGroup) (*models.CommunityGroup, error) {
	if g.ID == "" {
		return nil, status.ErrValidation
	}
	return s.groups.Update(ctx, g)
}

func (s *CommunityService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return status.ErrValidation
	}
	return s.groups.Delete(ctx, id)
}

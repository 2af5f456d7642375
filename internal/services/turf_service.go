package services

import (
	"context"
	"fmt"

	"turf-booking/internal/status"
	"turf-booking/internal/store"
	"turf-booking/models"
)

// TurfService owns the turf catalog.
type TurfService struct {
	turfs store.TurfStore

	// defaultImage is applied when a listing is created without one.
	defaultImage string
}

func NewTurfService(turfs store.TurfStore, s3Bucket string) *TurfService {
	return &TurfService{
		turfs:        turfs,
		defaultImage: fmt.Sprintf("https://%s.s3.ap-south-1.amazonaws.com/turf_images/turf_default.jpg", s3Bucket),
	}
}

func (s *TurfService) Create(ctx context.Context, t *models.Turf) (*models.Turf, error) {
	if t.TurfName == "" || t.Location == "" {
		return nil, fmt.Errorf("%w: turfname and location are required", status.ErrValidation)
	}
	if t.Court <= 0 {
		return nil, fmt.Errorf("%w: court count must be positive", status.ErrValidation)
	}
	if len(t.Slots) == 0 {
		return nil, fmt.Errorf("%w: slot catalog is required", status.ErrValidation)
	}
	if t.Images == "" {
		t.Images = s.defaultImage
	}

	return s.turfs.Create(ctx, t)
}

func (s *TurfService) Get(ctx context.Context, id string) (*models.Turf, error) {
	if id == "" {
		return nil, status.ErrValidation
	}
	return s.turfs.FindByID(ctx, id)
}

func (s *TurfService) List(ctx context.Context, filter store.TurfFilter) ([]*models.Turf, error) {
	return s.turfs.List(ctx, filter)
}

func (s *TurfService) ByOwner(ctx context.Context, ownerMobileNo string) ([]*models.Turf, error) {
	if ownerMobileNo == "" {
		return nil, status.ErrValidation
	}
	return s.turfs.FindByOwner(ctx, NormalizeMobile(ownerMobileNo))
}

func (s *TurfService) Update(ctx context.Context, t *models.Turf) (*models.Turf, error) {
	if t.ID == "" {
		return nil, status.ErrValidation
	}
	if t.Court <= 0 {
		return nil, fmt.Errorf("%w: court count must be positive", status.ErrValidation)
	}
	return s.turfs.Update(ctx, t)
}

// UpdateSlots replaces a turf's slot catalog, leaving the rest of the
// listing untouched.
func (s *TurfService) UpdateSlots(ctx context.Context, id string, slots []models.Slot) (*models.Turf, error) {
	if id == "" || len(slots) == 0 {
		return nil, status.ErrValidation
	}

	turf, err := s.turfs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	turf.Slots = slots

	return s.turfs.Update(ctx, turf)
}

func (s *TurfService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return status.ErrValidation
	}
	return s.turfs.Delete(ctx, id)
}

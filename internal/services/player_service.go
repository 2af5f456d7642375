package services

import (
	"context"
	"fmt"
	"strings"

	"turf-booking/internal/status"
	"turf-booking/internal/store"
	"turf-booking/models"
)

// PlayerService owns player registration and profile management. Phone
// numbers are normalized to the +91 country prefix once, at the edge of
// every operation that accepts one.
type PlayerService struct {
	players store.PlayerStore
	turfs   store.TurfStore
}

func NewPlayerService(players store.PlayerStore, turfs store.TurfStore) *PlayerService {
	return &PlayerService{players: players, turfs: turfs}
}

// NormalizeMobile applies the +91 prefix when missing.
func NormalizeMobile(mobileNo string) string {
	if mobileNo == "" || strings.HasPrefix(mobileNo, "+91") {
		return mobileNo
	}
	return "+91" + mobileNo
}

func (s *PlayerService) Register(ctx context.Context, p *models.Player) (*models.Player, error) {
	if p.MobileNo == "" {
		return nil, fmt.Errorf("%w: mobileno is required", status.ErrValidation)
	}
	if p.InterestedSport != "" && !contains(models.InterestedSports, p.InterestedSport) {
		return nil, fmt.Errorf("%w: unknown sport %q", status.ErrValidation, p.InterestedSport)
	}
	if p.Level != "" && !contains(models.PlayerLevels, p.Level) {
		return nil, fmt.Errorf("%w: unknown level %q", status.ErrValidation, p.Level)
	}

	p.MobileNo = NormalizeMobile(p.MobileNo)
	p.IsVerified = false

	return s.players.Create(ctx, p)
}

func (s *PlayerService) List(ctx context.Context) ([]*models.Player, error) {
	return s.players.List(ctx)
}

func (s *PlayerService) GetByMobile(ctx context.Context, mobileNo string) (*models.Player, error) {
	if mobileNo == "" {
		return nil, status.ErrValidation
	}
	return s.players.FindByMobile(ctx, NormalizeMobile(mobileNo))
}

func (s *PlayerService) Update(ctx context.Context, p *models.Player) (*models.Player, error) {
	if p.ID == "" {
		return nil, status.ErrValidation
	}
	if p.MobileNo != "" {
		p.MobileNo = NormalizeMobile(p.MobileNo)
	}
	return s.players.Update(ctx, p)
}

func (s *PlayerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return status.ErrValidation
	}
	return s.players.Delete(ctx, id)
}

func (s *PlayerService) UpdateProfile(ctx context.Context, id, profileURL string) (*models.Player, error) {
	if id == "" || profileURL == "" {
		return nil, status.ErrValidation
	}
	if err := s.players.SetProfile(ctx, id, profileURL); err != nil {
		return nil, err
	}
	return s.players.FindByID(ctx, id)
}

// ToggleFavourite flips a turf in the player's favourites list and returns
// the updated list.
func (s *PlayerService) ToggleFavourite(ctx context.Context, mobileNo, turfID string) ([]string, error) {
	if mobileNo == "" || turfID == "" {
		return nil, fmt.Errorf("%w: turfId and mobileno are required", status.ErrValidation)
	}

	player, err := s.players.FindByMobile(ctx, NormalizeMobile(mobileNo))
	if err != nil {
		return nil, err
	}
	return s.players.ToggleFavourite(ctx, player.ID, turfID)
}

// FavouriteTurfs resolves the player's favourite turf ids to turf records.
// Favourites pointing at deleted turfs are skipped.
func (s *PlayerService) FavouriteTurfs(ctx context.Context, mobileNo string) ([]*models.Turf, error) {
	player, err := s.GetByMobile(ctx, mobileNo)
	if err != nil {
		return nil, err
	}

	turfs := make([]*models.Turf, 0, len(player.FavTurfs))
	for _, id := range player.FavTurfs {
		turf, err := s.turfs.FindByID(ctx, id)
		if err != nil {
			if status.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		turfs = append(turfs, turf)
	}
	return turfs, nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"fmt"
	"testing"

	"turf-booking/internal/status"
	"turf-booking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayerStore struct {
	seq     int
	players map[string]*models.Player
}

func newFakePlayerStore() *fakePlayerStore {
	return &fakePlayerStore{players: map[string]*models.Player{}}
}

func (f *fakePlayerStore) Create(ctx context.Context, p *models.Player) (*models.Player, error) {
	f.seq++
	p.ID = fmt.Sprintf("pl%03d", f.seq)
	f.players[p.ID] = p
	return p, nil
}

func (f *fakePlayerStore) FindByID(ctx context.Context, id string) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, status.ErrPlayerNotFound
	}
	return p, nil
}

func (f *fakePlayerStore) FindByMobile(ctx context.Context, mobileNo string) (*models.Player, error) {
	for _, p := range f.players {
		if p.MobileNo == mobileNo {
			return p, nil
		}
	}
	return nil, status.ErrPlayerNotFound
}

func (f *fakePlayerStore) List(ctx context.Context) ([]*models.Player, error) {
	out := []*models.Player{}
	for _, p := range f.players {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlayerStore) Update(ctx context.Context, p *models.Player) (*models.Player, error) {
	if _, ok := f.players[p.ID]; !ok {
		return nil, status.ErrPlayerNotFound
	}
	f.players[p.ID] = p
	return p, nil
}

func (f *fakePlayerStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.players[id]; !ok {
		return status.ErrPlayerNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *fakePlayerStore) SetProfile(ctx context.Context, id, profileURL string) error {
	p, ok := f.players[id]
	if !ok {
		return status.ErrPlayerNotFound
	}
	p.Profile = profileURL
	return nil
}

func (f *fakePlayerStore) ToggleFavourite(ctx context.Context, playerID, turfID string) ([]string, error) {
	p, ok := f.players[playerID]
	if !ok {
		return nil, status.ErrPlayerNotFound
	}

	next := []string{}
	removed := false
	for _, id := range p.FavTurfs {
		if id == turfID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, turfID)
	}
	p.FavTurfs = next
	return next, nil
}

func (f *fakePlayerStore) SetOTPOrder(ctx context.Context, playerID, orderHash string) error {
	p, ok := f.players[playerID]
	if !ok {
		return status.ErrPlayerNotFound
	}
	_ = p
	return nil
}

func (f *fakePlayerStore) MarkVerified(ctx context.Context, playerID string) error {
	p, ok := f.players[playerID]
	if !ok {
		return status.ErrPlayerNotFound
	}
	p.IsVerified = true
	return nil
}

func TestNormalizeMobile(t *testing.T) {
	assert.Equal(t, "+911234567890", NormalizeMobile("1234567890"))
	assert.Equal(t, "+911234567890", NormalizeMobile("+911234567890"))
	assert.Equal(t, "", NormalizeMobile(""))
}

func TestRegisterPrefixesMobile(t *testing.T) {
	players := newFakePlayerStore()
	svc := NewPlayerService(players, &fakeTurfStore{turfs: map[string]*models.Turf{}})

	created, err := svc.Register(context.Background(), &models.Player{
		FirstName:       "Asha",
		MobileNo:        "1234567890",
		InterestedSport: "football",
		Level:           "beginner",
	})

	require.NoError(t, err)
	assert.Equal(t, "+911234567890", created.MobileNo)
	assert.False(t, created.IsVerified)
}

func TestRegisterRejectsUnknownSport(t *testing.T) {
	svc := NewPlayerService(newFakePlayerStore(), &fakeTurfStore{turfs: map[string]*models.Turf{}})

	_, err := svc.Register(context.Background(), &models.Player{
		MobileNo:        "1234567890",
		InterestedSport: "chess",
	})

	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestGetByMobileAppliesPrefix(t *testing.T) {
	players := newFakePlayerStore()
	svc := NewPlayerService(players, &fakeTurfStore{turfs: map[string]*models.Turf{}})

	_, err := svc.Register(context.Background(), &models.Player{MobileNo: "1234567890"})
	require.NoError(t, err)

	found, err := svc.GetByMobile(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "+911234567890", found.MobileNo)
}

func TestToggleFavourite(t *testing.T) {
	players := newFakePlayerStore()
	svc := NewPlayerService(players, &fakeTurfStore{turfs: map[string]*models.Turf{}})
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.Player{MobileNo: "1234567890"})
	require.NoError(t, err)

	favs, err := svc.ToggleFavourite(ctx, "1234567890", "turf1")
	require.NoError(t, err)
	assert.Equal(t, []string{"turf1"}, favs)

	favs, err = svc.ToggleFavourite(ctx, "1234567890", "turf1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestFavouriteTurfsSkipsDeleted(t *testing.T) {
	players := newFakePlayerStore()
	turfs := &fakeTurfStore{turfs: map[string]*models.Turf{
		"turf1": {ID: "turf1", TurfName: "Green Arena"},
	}}
	svc := NewPlayerService(players, turfs)
	ctx := context.Background()

	player, err := svc.Register(ctx, &models.Player{MobileNo: "1234567890"})
	require.NoError(t, err)
	players.players[player.ID].FavTurfs = []string{"turf1", "deleted-turf"}

	favs, err := svc.FavouriteTurfs(ctx, "1234567890")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Green Arena", favs[0].TurfName)
}

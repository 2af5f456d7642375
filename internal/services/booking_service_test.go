package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"turf-booking/internal/status"
	"turf-booking/internal/store"
	"turf-booking/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTurfStore serves a fixed turf catalog.
type fakeTurfStore struct {
	turfs map[string]*models.Turf
}

func (f *fakeTurfStore) Create(ctx context.Context, t *models.Turf) (*models.Turf, error) {
	f.turfs[t.ID] = t
	return t, nil
}

func (f *fakeTurfStore) FindByID(ctx context.Context, id string) (*models.Turf, error) {
	t, ok := f.turfs[id]
	if !ok {
		return nil, status.ErrTurfNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTurfStore) FindByOwner(ctx context.Context, owner string) ([]*models.Turf, error) {
	out := []*models.Turf{}
	for _, t := range f.turfs {
		if t.OwnerMobileNo == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTurfStore) List(ctx context.Context, filter store.TurfFilter) ([]*models.Turf, error) {
	out := []*models.Turf{}
	for _, t := range f.turfs {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTurfStore) Update(ctx context.Context, t *models.Turf) (*models.Turf, error) {
	f.turfs[t.ID] = t
	return t, nil
}

func (f *fakeTurfStore) Delete(ctx context.Context, id string) error {
	delete(f.turfs, id)
	return nil
}

// fakeBookingStore mirrors the transactional guarantees of the PocketBase
// store with a mutex: the tuple check, the capacity check and the insert
// happen atomically.
type fakeBookingStore struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*models.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[string]*models.Booking{}}
}

func (f *fakeBookingStore) Create(ctx context.Context, b *models.Booking, capacity int) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, existing := range f.bookings {
		if existing.TurfID == b.TurfID && existing.Date == b.Date && existing.Slot == b.Slot {
			if existing.Court == b.Court {
				return nil, status.ErrSlotTaken
			}
			count++
		}
	}
	if count >= capacity {
		return nil, status.ErrCourtsFull
	}

	f.seq++
	stored := *b
	stored.ID = fmt.Sprintf("bk%03d", f.seq)
	stored.Members = []models.Member{}
	f.bookings[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (f *fakeBookingStore) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, status.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) AddMember(ctx context.Context, bookingID string, m models.Member) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, status.ErrBookingNotFound
	}
	if !b.PlayWithStranger {
		return nil, status.ErrNotShared
	}
	if b.RemainingMembers >= b.TotalMembers {
		return nil, status.ErrMembersFull
	}
	for _, existing := range b.Members {
		if existing.UserID == m.UserID {
			return nil, status.ErrAlreadyMember
		}
	}

	b.Members = append(b.Members, m)
	b.RemainingMembers++

	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) FindByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*models.Booking{}
	for _, b := range f.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) List(ctx context.Context, date string, limit int) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*models.Booking{}
	for _, b := range f.bookings {
		if date != "" && b.Date != date {
			continue
		}
		if len(out) >= limit {
			break
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingStore) ListShared(ctx context.Context) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*models.Booking{}
	for _, b := range f.bookings {
		if b.PlayWithStranger {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) CountForSlot(ctx context.Context, turfID, date, slot string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, b := range f.bookings {
		if b.TurfID == turfID && b.Date == date && b.Slot == slot {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingStore) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

func newTestBookingService(turfs map[string]*models.Turf) (*BookingService, *fakeBookingStore) {
	bookings := newFakeBookingStore()
	svc := NewBookingService(&fakeTurfStore{turfs: turfs}, bookings, nil)
	return svc, bookings
}

func twoCourtTurf() map[string]*models.Turf {
	return map[string]*models.Turf{
		"turf1": {
			ID:       "turf1",
			TurfName: "Green Arena",
			Location: "Kochi",
			Images:   "https://example.com/turf1.jpg",
			Court:    2,
			Slots: []models.Slot{
				{Time: "6AM-7AM", Price: decimal.NewFromInt(500)},
				{Time: "7AM-8AM", Price: decimal.NewFromInt(600)},
			},
		},
	}
}

func TestCreateBookingUnknownTurf(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())

	_, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{
		UserID: "u1", TurfID: "missing", Court: "A", Date: "2026-09-10", Slot: "6AM-7AM",
	})

	assert.ErrorIs(t, err, status.ErrTurfNotFound)
}

func TestCreateBookingUnknownSlotLabel(t *testing.T) {
	svc, bookings := newTestBookingService(twoCourtTurf())

	_, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{
		UserID: "u1", TurfID: "turf1", Court: "A", Date: "2026-09-10", Slot: "midnight",
	})

	assert.ErrorIs(t, err, status.ErrSlotUnknown)
	assert.Equal(t, 0, bookings.size())
}

func TestCreateBookingSnapshotsTurfAndPrice(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())

	booking, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{
		UserID: "u1", TurfID: "turf1", Court: "A", Date: "2026-09-10", Slot: "7AM-8AM",
	})

	require.NoError(t, err)
	assert.Equal(t, "Green Arena", booking.TurfName)
	assert.Equal(t, "Kochi", booking.Location)
	assert.Equal(t, "https://example.com/turf1.jpg", booking.TurfImage)
	assert.True(t, booking.Price.Equal(decimal.NewFromInt(600)))
}

// Two courts: the same slot can be booked twice on different courts, a
// duplicate court conflicts, and a third court is over capacity.
func TestCreateBookingTwoCourtScenario(t *testing.T) {
	svc, bookings := newTestBookingService(twoCourtTurf())
	ctx := context.Background()

	req := models.NewBookingRequest{UserID: "u1", TurfID: "turf1", Date: "2026-09-10", Slot: "6AM-7AM"}

	req.Court = "A"
	_, err := svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	req.Court = "A"
	_, err = svc.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, status.ErrSlotTaken)

	req.Court = "B"
	_, err = svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	req.Court = "C"
	_, err = svc.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, status.ErrCourtsFull)

	assert.Equal(t, 2, bookings.size())

	// The same court is free again on another date.
	req.Court = "A"
	req.Date = "2026-09-11"
	_, err = svc.CreateBooking(ctx, req)
	assert.NoError(t, err)
}

func TestCreateBookingValidatesRequiredFields(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())

	_, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{
		UserID: "u1", TurfID: "turf1", Court: "A", Slot: "6AM-7AM",
	})

	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestConcurrentCreatesSingleCapacity(t *testing.T) {
	turfs := twoCourtTurf()
	turfs["turf1"].Court = 1
	svc, bookings := newTestBookingService(turfs)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{
				UserID: fmt.Sprintf("u%d", n),
				TurfID: "turf1",
				Court:  "A",
				Date:   "2026-09-10",
				Slot:   "6AM-7AM",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, status.IsConflict(err), "unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, bookings.size())
}

func createSharedBooking(t *testing.T, svc *BookingService) *models.Booking {
	t.Helper()

	booking, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{
		UserID:           "host",
		TurfID:           "turf1",
		Court:            "A",
		Date:             "2026-09-10",
		Slot:             "6AM-7AM",
		PlayWithStranger: true,
		TotalMembers:     3,
		RemainingMembers: 1,
	})
	require.NoError(t, err)
	return booking
}

func TestJoinBookingIncrementsByOne(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())
	booking := createSharedBooking(t, svc)

	joined, err := svc.JoinBooking(context.Background(), models.JoinBookingRequest{
		BookingID: booking.ID, UserID: "guest1", Name: "Guest One",
	})

	require.NoError(t, err)
	assert.Equal(t, booking.RemainingMembers+1, joined.RemainingMembers)
	assert.True(t, joined.HasMember("guest1"))
}

func TestJoinBookingNotFound(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())

	_, err := svc.JoinBooking(context.Background(), models.JoinBookingRequest{
		BookingID: "missing", UserID: "guest1",
	})

	assert.ErrorIs(t, err, status.ErrBookingNotFound)
}

func TestJoinBookingNotShared(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())

	booking, err := svc.CreateBooking(context.Background(), models.NewBookingRequest{
		UserID: "host", TurfID: "turf1", Court: "A", Date: "2026-09-10", Slot: "6AM-7AM",
	})
	require.NoError(t, err)

	_, err = svc.JoinBooking(context.Background(), models.JoinBookingRequest{
		BookingID: booking.ID, UserID: "guest1",
	})

	assert.ErrorIs(t, err, status.ErrNotShared)
}

func TestJoinBookingDuplicateMember(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())
	booking := createSharedBooking(t, svc)
	ctx := context.Background()

	_, err := svc.JoinBooking(ctx, models.JoinBookingRequest{BookingID: booking.ID, UserID: "guest1"})
	require.NoError(t, err)

	_, err = svc.JoinBooking(ctx, models.JoinBookingRequest{BookingID: booking.ID, UserID: "guest1"})
	assert.ErrorIs(t, err, status.ErrAlreadyMember)
}

func TestJoinBookingMembersFull(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())
	booking := createSharedBooking(t, svc)
	ctx := context.Background()

	// remaining starts at 1 of 3: two joins fill it.
	_, err := svc.JoinBooking(ctx, models.JoinBookingRequest{BookingID: booking.ID, UserID: "guest1"})
	require.NoError(t, err)
	_, err = svc.JoinBooking(ctx, models.JoinBookingRequest{BookingID: booking.ID, UserID: "guest2"})
	require.NoError(t, err)

	_, err = svc.JoinBooking(ctx, models.JoinBookingRequest{BookingID: booking.ID, UserID: "guest3"})
	assert.ErrorIs(t, err, status.ErrMembersFull)
}

func TestPastUpcomingPartition(t *testing.T) {
	svc, _ := newTestBookingService(map[string]*models.Turf{
		"turf1": {
			ID: "turf1", TurfName: "Green Arena", Location: "Kochi", Court: 5,
			Slots: []models.Slot{{Time: "6AM-7AM", Price: decimal.NewFromInt(500)}},
		},
	})
	svc.now = func() time.Time {
		return time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	}
	ctx := context.Background()

	for i, date := range []string{"2026-09-09", "2026-09-10", "2026-09-11"} {
		_, err := svc.CreateBooking(ctx, models.NewBookingRequest{
			UserID: "u1", TurfID: "turf1", Court: fmt.Sprintf("C%d", i), Date: date, Slot: "6AM-7AM",
		})
		require.NoError(t, err)
	}

	past, err := svc.PastBookings(ctx, "u1")
	require.NoError(t, err)
	upcoming, err := svc.UpcomingBookings(ctx, "u1")
	require.NoError(t, err)

	// Yesterday and today are past, tomorrow is upcoming.
	require.Len(t, past, 2)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "2026-09-10", past[0].Date)
	assert.Equal(t, "2026-09-09", past[1].Date)
	assert.Equal(t, "2026-09-11", upcoming[0].Date)
}

func TestAvailableSlotsDropsFullSlot(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())
	ctx := context.Background()

	req := models.NewBookingRequest{UserID: "u1", TurfID: "turf1", Date: "2026-09-10", Slot: "6AM-7AM"}
	for _, court := range []string{"A", "B"} {
		req.Court = court
		_, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)
	}

	availability, err := svc.AvailableSlots(ctx, "2026-09-10")
	require.NoError(t, err)
	require.Len(t, availability, 1)

	slots := availability[0].AvailableSlots
	require.Len(t, slots, 1)
	assert.Equal(t, "7AM-8AM", slots[0].Time)
}

func TestAvailableSlotsKeepsPartiallyBookedSlot(t *testing.T) {
	svc, _ := newTestBookingService(twoCourtTurf())
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, models.NewBookingRequest{
		UserID: "u1", TurfID: "turf1", Court: "A", Date: "2026-09-10", Slot: "6AM-7AM",
	})
	require.NoError(t, err)

	availability, err := svc.AvailableSlots(ctx, "2026-09-10")
	require.NoError(t, err)
	require.Len(t, availability, 1)
	assert.Len(t, availability[0].AvailableSlots, 2)
}

func TestListBookingsCapped(t *testing.T) {
	turfs := twoCourtTurf()
	turfs["turf1"].Court = 100
	svc, _ := newTestBookingService(turfs)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, err := svc.CreateBooking(ctx, models.NewBookingRequest{
			UserID: "u1", TurfID: "turf1", Court: fmt.Sprintf("C%d", i), Date: "2026-09-10", Slot: "6AM-7AM",
		})
		require.NoError(t, err)
	}

	bookings, err := svc.ListBookings(ctx, "2026-09-10")
	require.NoError(t, err)
	assert.Len(t, bookings, 25)
}

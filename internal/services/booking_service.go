package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"turf-booking/internal/status"
	"turf-booking/internal/store"
	"turf-booking/models"
	"turf-booking/monitoring"

	pubnub "github.com/pubnub/go/v7"
)

// BookingService is the slot allocator. Every operation is stateless across
// calls; the store is the sole source of truth and carries the atomicity
// guarantees (see store.BookingStore).
type BookingService struct {
	turfs    store.TurfStore
	bookings store.BookingStore
	pubnub   *pubnub.PubNub

	// now is swappable so the past/upcoming partition is testable against
	// a fixed date.
	now func() time.Time
}

func NewBookingService(turfs store.TurfStore, bookings store.BookingStore, pn *pubnub.PubNub) *BookingService {
	return &BookingService{
		turfs:    turfs,
		bookings: bookings,
		pubnub:   pn,
		now:      time.Now,
	}
}

// maxAdminListing caps the admin booking listing.
const maxAdminListing = 25

func (s *BookingService) CreateBooking(ctx context.Context, req models.NewBookingRequest) (*models.Booking, error) {
	if req.UserID == "" || req.TurfID == "" || req.Court == "" || req.Date == "" || req.Slot == "" {
		return nil, status.ErrValidation
	}

	date, err := normalizeDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrValidation, err)
	}

	turf, err := s.turfs.FindByID(ctx, req.TurfID)
	if err != nil {
		monitoring.TrackBookingOperation("create", "turf_not_found")
		return nil, err
	}

	// The reference implementation crashed on an unknown slot label; guard
	// it explicitly as a data-integrity failure.
	price, ok := turf.SlotPrice(req.Slot)
	if !ok {
		monitoring.TrackBookingOperation("create", "unknown_slot")
		return nil, status.ErrSlotUnknown
	}

	booking := &models.Booking{
		UserID:           req.UserID,
		TurfID:           turf.ID,
		TurfName:         turf.TurfName,
		TurfImage:        turf.Images,
		Location:         turf.Location,
		Court:            req.Court,
		Date:             date,
		Slot:             req.Slot,
		PlayWithStranger: req.PlayWithStranger,
		Price:            price,
	}
	if req.PlayWithStranger {
		booking.TotalMembers = req.TotalMembers
		booking.RemainingMembers = req.RemainingMembers
	}

	created, err := s.bookings.Create(ctx, booking, turf.Court)
	if err != nil {
		if status.IsConflict(err) {
			monitoring.TrackBookingOperation("create", "conflict")
		} else {
			monitoring.TrackBookingOperation("create", "error")
		}
		return nil, err
	}

	monitoring.TrackBookingOperation("create", "success")
	s.publish(fmt.Sprintf("user-%s", created.UserID), map[string]any{
		"type":       "booking_created",
		"booking_id": created.ID,
		"turf_name":  created.TurfName,
		"date":       created.Date,
		"slot":       created.Slot,
	})

	return created, nil
}

func (s *BookingService) JoinBooking(ctx context.Context, req models.JoinBookingRequest) (*models.Booking, error) {
	if req.BookingID == "" || req.UserID == "" {
		return nil, status.ErrValidation
	}

	booking, err := s.bookings.AddMember(ctx, req.BookingID, models.Member{
		UserID: req.UserID,
		Name:   req.Name,
	})
	if err != nil {
		if status.IsConflict(err) {
			monitoring.TrackBookingOperation("join", "conflict")
		}
		return nil, err
	}

	monitoring.TrackBookingOperation("join", "success")
	s.publish(fmt.Sprintf("user-%s", booking.UserID), map[string]any{
		"type":       "member_joined",
		"booking_id": booking.ID,
		"member":     req.Name,
		"remaining":  booking.RemainingMembers,
	})

	return booking, nil
}

func (s *BookingService) BookingsForUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	if userID == "" {
		return nil, status.ErrValidation
	}
	return s.bookings.FindByUser(ctx, userID)
}

// ListBookings returns all bookings for an optional date filter, capped at
// 25 results.
func (s *BookingService) ListBookings(ctx context.Context, date string) ([]*models.Booking, error) {
	if date != "" {
		normalized, err := normalizeDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", status.ErrValidation, err)
		}
		date = normalized
	}
	return s.bookings.List(ctx, date, maxAdminListing)
}

func (s *BookingService) SharedBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.bookings.ListShared(ctx)
}

// PastBookings returns the user's bookings dated today or earlier, newest
// date first. The comparison is date-only, matching the stored YYYY-MM-DD
// form.
func (s *BookingService) PastBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	past, _, err := s.partition(ctx, userID)
	return past, err
}

// UpcomingBookings returns the user's bookings dated strictly after today.
func (s *BookingService) UpcomingBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	_, upcoming, err := s.partition(ctx, userID)
	return upcoming, err
}

func (s *BookingService) partition(ctx context.Context, userID string) (past, upcoming []*models.Booking, err error) {
	if userID == "" {
		return nil, nil, status.ErrValidation
	}

	all, err := s.bookings.FindByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	today := s.now().Format(models.DateLayout)
	past = []*models.Booking{}
	upcoming = []*models.Booking{}
	for _, b := range all {
		if b.Date <= today {
			past = append(past, b)
		} else {
			upcoming = append(upcoming, b)
		}
	}

	sort.Slice(past, func(i, j int) bool { return past[i].Date > past[j].Date })

	return past, upcoming, nil
}

// AvailableSlots computes, for every turf, the catalog slots that still have
// court capacity on the given date. A slot stays available while the number
// of bookings for (turf, date, slot) across all courts is below the turf's
// court count.
func (s *BookingService) AvailableSlots(ctx context.Context, date string) ([]*models.TurfAvailability, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrValidation, err)
	}

	turfs, err := s.turfs.List(ctx, store.TurfFilter{})
	if err != nil {
		return nil, err
	}

	result := make([]*models.TurfAvailability, 0, len(turfs))
	for _, turf := range turfs {
		available := []models.Slot{}
		for _, slot := range turf.Slots {
			count, err := s.bookings.CountForSlot(ctx, turf.ID, normalized, slot.Time)
			if err != nil {
				return nil, err
			}
			if count < turf.Court {
				available = append(available, slot)
			}
		}
		monitoring.SetSlotAvailability(turf.ID, normalized, len(available))
		result = append(result, &models.TurfAvailability{Turf: *turf, AvailableSlots: available})
	}

	return result, nil
}

func (s *BookingService) publish(channel string, message map[string]any) {
	if s.pubnub == nil {
		return
	}
	_, st, err := s.pubnub.Publish().Channel(channel).Message(message).Execute()
	if err != nil {
		slog.Error("pubnub publish failed", "channel", channel, "status", st.StatusCode, "error", err)
	}
}

// normalizeDate truncates any accepted date form to YYYY-MM-DD, the only
// granularity bookings carry.
func normalizeDate(raw string) (string, error) {
	layouts := []string{models.DateLayout, time.RFC3339, "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(models.DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", raw)
}

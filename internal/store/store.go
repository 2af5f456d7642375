package store

import (
	"context"
	"time"

	"turf-booking/models"

	"github.com/shopspring/decimal"
)

// The stores are explicit handles passed into services instead of ambient
// globals, so tests can swap in fakes and the PocketBase implementation can
// wrap the allocator's checks in a single transaction.

type TurfFilter struct {
	Location string
	Category string
	Rating   string
}

type TurfStore interface {
	Create(ctx context.Context, t *models.Turf) (*models.Turf, error)
	FindByID(ctx context.Context, id string) (*models.Turf, error)
	FindByOwner(ctx context.Context, ownerMobileNo string) ([]*models.Turf, error)
	List(ctx context.Context, filter TurfFilter) ([]*models.Turf, error)
	Update(ctx context.Context, t *models.Turf) (*models.Turf, error)
	Delete(ctx context.Context, id string) error
}

type BookingStore interface {
	// Create persists a booking after re-checking, inside one transaction,
	// that the (turf, court, date, slot) tuple is unclaimed and that the
	// slot still has court capacity. Racing duplicates surface as
	// status.ErrSlotTaken via the unique index.
	Create(ctx context.Context, b *models.Booking, capacity int) (*models.Booking, error)

	FindByID(ctx context.Context, id string) (*models.Booking, error)

	// AddMember appends a member and increments the remaining-member count
	// as one guarded transaction. It returns status.ErrNotShared,
	// status.ErrMembersFull or status.ErrAlreadyMember when the join is
	// rejected.
	AddMember(ctx context.Context, bookingID string, m models.Member) (*models.Booking, error)

	FindByUser(ctx context.Context, userID string) ([]*models.Booking, error)

	// List returns bookings, optionally filtered by date, capped at limit.
	List(ctx context.Context, date string, limit int) ([]*models.Booking, error)

	ListShared(ctx context.Context) ([]*models.Booking, error)

	// CountForSlot counts bookings for (turfID, date, slot) across courts.
	CountForSlot(ctx context.Context, turfID, date, slot string) (int, error)
}

type PlayerStore interface {
	Create(ctx context.Context, p *models.Player) (*models.Player, error)
	FindByID(ctx context.Context, id string) (*models.Player, error)
	FindByMobile(ctx context.Context, mobileNo string) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	Update(ctx context.Context, p *models.Player) (*models.Player, error)
	Delete(ctx context.Context, id string) error

	SetProfile(ctx context.Context, playerID, profileURL string) error

	// ToggleFavourite adds turfID to the player's favourites, or removes it
	// when already present, and returns the updated list.
	ToggleFavourite(ctx context.Context, playerID, turfID string) ([]string, error)

	SetOTPOrder(ctx context.Context, playerID, orderHash string) error
	MarkVerified(ctx context.Context, playerID string) error
}

type GroupStore interface {
	Create(ctx context.Context, g *models.CommunityGroup) (*models.CommunityGroup, error)
	FindByID(ctx context.Context, id string) (*models.CommunityGroup, error)
	List(ctx context.Context) ([]*models.CommunityGroup, error)
	Update(ctx context.Context, g *models.CommunityGroup) (*models.CommunityGroup, error)
	Delete(ctx context.Context, id string) error
}

type PaymentStore interface {
	SavePayment(ctx context.Context, p *models.Payment) (*models.Payment, error)
	SaveTurfPayment(ctx context.Context, p *models.TurfPayment) (*models.TurfPayment, error)
	FindTurfPaymentByPaymentID(ctx context.Context, paymentID string) (*models.TurfPayment, error)

	// SumEarnings totals turf-payment amounts for an owner between start
	// and end (inclusive).
	SumEarnings(ctx context.Context, ownerMobileNo string, start, end time.Time) (decimal.Decimal, error)

	// ListSince returns an owner's turf payments created in [start, end],
	// newest first.
	ListSince(ctx context.Context, ownerMobileNo string, start, end time.Time) ([]*models.TurfPayment, error)
}

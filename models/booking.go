package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format bookings are stored and compared
// with. Time-of-day is never part of a booking date.
const DateLayout = "2006-01-02"

type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// Booking snapshots the turf's name, image and location at creation time so
// later turf edits do not rewrite booking history.
type Booking struct {
	ID               string          `db:"id" json:"id"`
	UserID           string          `db:"user_id" json:"userId"`
	TurfID           string          `db:"turf_id" json:"turfId"`
	TurfName         string          `db:"turf_name" json:"turfName"`
	TurfImage        string          `db:"turf_image" json:"turfImage"`
	Location         string          `db:"location" json:"location"`
	Court            string          `db:"court" json:"court"`
	Date             string          `db:"date" json:"date"`
	Slot             string          `db:"slot" json:"slot"`
	PlayWithStranger bool            `db:"play_with_stranger" json:"playWithStranger"`
	TotalMembers     int             `db:"total_members" json:"totalMembers,omitempty"`
	RemainingMembers int             `db:"remaining_members" json:"remainingMembers,omitempty"`
	Members          []Member        `json:"members"`
	Price            decimal.Decimal `db:"price" json:"price"`
	Created          time.Time       `db:"created" json:"created"`
}

// HasMember reports whether the user already joined this booking.
func (b *Booking) HasMember(userID string) bool {
	for _, m := range b.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// NewBookingRequest is the create payload accepted by POST /booking.
type NewBookingRequest struct {
	UserID           string `json:"userId"`
	TurfID           string `json:"turfId"`
	Court            string `json:"court"`
	Date             string `json:"date"`
	Slot             string `json:"slot"`
	TotalMembers     int    `json:"totalMembers"`
	RemainingMembers int    `json:"remainingMembers"`
	PlayWithStranger bool   `json:"playWithStranger"`
}

// JoinBookingRequest is the payload accepted by POST /booking/join.
type JoinBookingRequest struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
}

package handlers

import (
	"net/http"

	"turf-booking/internal/services"
	"turf-booking/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type BookingHandler struct {
	bookings *services.BookingService
	holds    *services.HoldService
}

func NewBookingHandler(bookings *services.BookingService, holds *services.HoldService) *BookingHandler {
	return &BookingHandler{bookings: bookings, holds: holds}
}

// CreateBooking - POST /booking
func (h *BookingHandler) CreateBooking(e *core.RequestEvent) error {
	var req models.NewBookingRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	booking, err := h.bookings.CreateBooking(e.Request.Context(), req)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusCreated, booking)
}

// JoinBooking - POST /booking/join
func (h *BookingHandler) JoinBooking(e *core.RequestEvent) error {
	var req models.JoinBookingRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	booking, err := h.bookings.JoinBooking(e.Request.Context(), req)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusCreated, booking)
}

// UserBookings - GET /booking/user/{userId}
func (h *BookingHandler) UserBookings(e *core.RequestEvent) error {
	userID := e.Request.PathValue("userId")

	bookings, err := h.bookings.BookingsForUser(e.Request.Context(), userID)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, bookings)
}

// ListBookings - GET /booking?date=
func (h *BookingHandler) ListBookings(e *core.RequestEvent) error {
	date := e.Request.URL.Query().Get("date")

	bookings, err := h.bookings.ListBookings(e.Request.Context(), date)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, bookings)
}

// SharedBookings - GET /booking/playWithStrangers
func (h *BookingHandler) SharedBookings(e *core.RequestEvent) error {
	bookings, err := h.bookings.SharedBookings(e.Request.Context())
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, bookings)
}

// PastBookings - GET /booking/pastBookings/{userId}
func (h *BookingHandler) PastBookings(e *core.RequestEvent) error {
	userID := e.Request.PathValue("userId")

	bookings, err := h.bookings.PastBookings(e.Request.Context(), userID)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, bookings)
}

// UpcomingBookings - GET /booking/upcomingBookings/{userId}
func (h *BookingHandler) UpcomingBookings(e *core.RequestEvent) error {
	userID := e.Request.PathValue("userId")

	bookings, err := h.bookings.UpcomingBookings(e.Request.Context(), userID)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, bookings)
}

type holdRequest struct {
	TurfID string `json:"turfId"`
	Date   string `json:"date"`
	Slot   string `json:"slot"`
	Court  string `json:"court"`
	UserID string `json:"userId"`
}

// HoldSlot - POST /booking/hold
func (h *BookingHandler) HoldSlot(e *core.RequestEvent) error {
	var req holdRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if req.TurfID == "" || req.Date == "" || req.Slot == "" || req.Court == "" || req.UserID == "" {
		return apis.NewBadRequestError("turfId, date, slot, court and userId are required", nil)
	}

	if err := h.holds.HoldSlotForUser(e.Request.Context(), req.TurfID, req.Date, req.Slot, req.Court, req.UserID); err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{"status": "held"})
}

// ReleaseHold - POST /booking/hold/release
func (h *BookingHandler) ReleaseHold(e *core.RequestEvent) error {
	var req holdRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	if err := h.holds.ReleaseHold(e.Request.Context(), req.TurfID, req.Date, req.Slot, req.Court, req.UserID); err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{"status": "released"})
}

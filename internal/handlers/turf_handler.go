package handlers

import (
	"net/http"

	"turf-booking/internal/services"
	"turf-booking/internal/store"
	"turf-booking/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type TurfHandler struct {
	turfs    *services.TurfService
	bookings *services.BookingService
}

func NewTurfHandler(turfs *services.TurfService, bookings *services.BookingService) *TurfHandler {
	return &TurfHandler{turfs: turfs, bookings: bookings}
}

// CreateTurf - POST /turf
func (h *TurfHandler) CreateTurf(e *core.RequestEvent) error {
	var turf models.Turf
	if err := e.BindBody(&turf); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	created, err := h.turfs.Create(e.Request.Context(), &turf)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusCreated, created)
}

// ListTurfs - GET /turf?location=&category=&rate=
func (h *TurfHandler) ListTurfs(e *core.RequestEvent) error {
	query := e.Request.URL.Query()
	filter := store.TurfFilter{
		Location: query.Get("location"),
		Category: query.Get("category"),
		Rating:   query.Get("rate"),
	}

	turfs, err := h.turfs.List(e.Request.Context(), filter)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, turfs)
}

// AvailableSlots - GET /turf/availableslot?date=
func (h *TurfHandler) AvailableSlots(e *core.RequestEvent) error {
	date := e.Request.URL.Query().Get("date")
	if date == "" {
		return apis.NewBadRequestError("date is required", nil)
	}

	availability, err := h.bookings.AvailableSlots(e.Request.Context(), date)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, availability)
}

// GetTurf - GET /turf/{id}
func (h *TurfHandler) GetTurf(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	turf, err := h.turfs.Get(e.Request.Context(), id)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, turf)
}

// OwnerTurfs - GET /turf/owner/{mobileNo}
func (h *TurfHandler) OwnerTurfs(e *core.RequestEvent) error {
	mobileNo := e.Request.PathValue("mobileNo")

	turfs, err := h.turfs.ByOwner(e.Request.Context(), mobileNo)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, turfs)
}

// UpdateTurf - PUT/PATCH /turf/id/{id}
func (h *TurfHandler) UpdateTurf(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var turf models.Turf
	if err := e.BindBody(&turf); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	turf.ID = id

	updated, err := h.turfs.Update(e.Request.Context(), &turf)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, updated)
}

// GetSlots - GET /turf/id/{id}/slots
func (h *TurfHandler) GetSlots(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	turf, err := h.turfs.Get(e.Request.Context(), id)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, turf.Slots)
}

type updateSlotsRequest struct {
	Slots []models.Slot `json:"slots"`
}

// UpdateSlots - PATCH /turf/id/{id}/slots
func (h *TurfHandler) UpdateSlots(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var req updateSlotsRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	updated, err := h.turfs.UpdateSlots(e.Request.Context(), id, req.Slots)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, updated)
}

// DeleteTurf - DELETE /turf/id/{id}
func (h *TurfHandler) DeleteTurf(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.turfs.Delete(e.Request.Context(), id); err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{"message": "Turf deleted successfully"})
}

package handlers

import (
	"errors"

	"turf-booking/internal/status"

	"github.com/pocketbase/pocketbase/apis"
)

// toAPIError maps service errors onto HTTP responses. Allocation conflicts
// stay 400, matching the public API contract clients already depend on.
func toAPIError(err error) error {
	switch {
	case status.IsNotFound(err):
		return apis.NewNotFoundError(err.Error(), err)
	case errors.Is(err, status.ErrSlotUnknown):
		// Not a user race: the booking references a slot label missing
		// from the turf catalog.
		return apis.NewBadRequestError("slot is not in the turf catalog", err)
	case status.IsConflict(err),
		errors.Is(err, status.ErrNotShared),
		errors.Is(err, status.ErrInvalidSignature),
		errors.Is(err, status.ErrWrongOTP),
		errors.Is(err, status.ErrValidation):
		return apis.NewBadRequestError(err.Error(), err)
	default:
		return apis.NewInternalServerError("Internal Server Error", err)
	}
}

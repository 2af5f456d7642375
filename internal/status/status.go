package status

import "errors"

var (
	// Not found
	ErrTurfNotFound    = errors.New("turf: turf not found")
	ErrBookingNotFound = errors.New("booking: booking not found")
	ErrPlayerNotFound  = errors.New("player: player not found")
	ErrPaymentNotFound = errors.New("payment: payment not found")
	ErrGroupNotFound   = errors.New("community: group not found")

	// Allocation conflicts
	ErrSlotTaken  = errors.New("booking: slot already booked for this court")
	ErrCourtsFull = errors.New("booking: all courts are booked for this slot")

	// Shared-booking conflicts
	ErrMembersFull   = errors.New("booking: members are full for this turf")
	ErrAlreadyMember = errors.New("booking: user is already a member of this booking")
	ErrNotShared     = errors.New("booking: this booking does not allow play with strangers")

	// Data integrity
	ErrSlotUnknown = errors.New("turf: slot label not in turf catalog")

	// Payments / OTP
	ErrInvalidSignature = errors.New("payment: signature verification failed")
	ErrWrongOTP         = errors.New("otp: wrong otp")

	// Holds
	ErrSlotHeld = errors.New("hold: slot held by another user")

	// Validation
	ErrValidation = errors.New("request: missing or invalid required fields")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTurfNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrGroupNotFound)
}

// IsConflict reports whether err is a state conflict the caller caused.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlotTaken) ||
		errors.Is(err, ErrCourtsFull) ||
		errors.Is(err, ErrMembersFull) ||
		errors.Is(err, ErrAlreadyMember) ||
		errors.Is(err, ErrSlotHeld)
}

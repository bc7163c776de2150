package booking_models

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")

	// ErrStaleStatus means a status-guarded update matched no row because
	// the booking was no longer in the expected state: the caller lost a
	// race and should re-read before deciding anything.
	ErrStaleStatus = errors.New("booking was modified concurrently, refresh and retry")
)

package booking_controller

import "errors"

var (
	ErrInvalidDates     = errors.New("check-out date must be after check-in date")
	ErrInvalidGuests    = errors.New("invalid number of guests for this room type")
	ErrNotAuthorized    = errors.New("not authorized to act on this booking")
	ErrAlreadyTerminal  = errors.New("booking is already cancelled or completed")
	ErrDuplicateRequest = errors.New("a booking request for this room type was just submitted, please wait")
)

package property_models

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrRoomTypeNotFound = errors.New("room type not found on property")

	// ErrInsufficientCapacity is a normal outcome of TryReserve: no rooms of
	// the requested type remain at the moment of the attempt.
	ErrInsufficientCapacity = errors.New("no rooms of this type remain")

	// ErrOverCapacity means a Release would push available_rooms above
	// total_rooms. That can only happen through a caller bug (double
	// release), so it is surfaced as a consistency error, never clamped.
	ErrOverCapacity = errors.New("release would exceed total rooms")

	// ErrInvalidCapacity rejects a capacity edit that breaks
	// 0 <= available <= total or claims rooms held by confirmed bookings.
	ErrInvalidCapacity = errors.New("invalid room capacity")
)

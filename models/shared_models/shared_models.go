package shared_models

import (
	"github.com/google/uuid"
)

// Booking status values. A booking starts pending and ends in cancelled or
// completed; confirmed is the only state that holds a room.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Room type kinds a property may offer.
const (
	RoomTypeStandard     = "standard"
	RoomTypeDeluxe       = "deluxe"
	RoomTypeExecutive    = "executive"
	RoomTypePresidential = "presidential"
)

// Actor roles carried in JWT claims.
const (
	RoleCustomer = "customer"
	RoleHost     = "host"
	RoleAdmin    = "admin"
)

// IsValidRoomType reports whether kind is one of the supported room types.
func IsValidRoomType(kind string) bool {
	switch kind {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeExecutive, RoomTypePresidential:
		return true
	}
	return false
}

// IsTerminalStatus reports whether a booking in this status can no longer
// transition.
func IsTerminalStatus(status string) bool {
	return status == BookingStatusCancelled || status == BookingStatusCompleted
}

// GenerateUUIDv7 generates a new UUIDv7.
func GenerateUUIDv7() (uuid.UUID, error) {
	return uuid.NewV7()
}

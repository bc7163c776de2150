package booking_controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/models/booking_models"
	"github.com/joy095/booking/models/property_models"
	"github.com/joy095/booking/models/shared_models"
)

// InventoryStore is the capacity counter contract the engine drives.
type InventoryStore interface {
	TryReserve(ctx context.Context, propertyID uuid.UUID, roomType string) error
	Release(ctx context.Context, propertyID uuid.UUID, roomType string) error
	HasCapacity(ctx context.Context, propertyID uuid.UUID, roomType string) (bool, error)
	GetRoomType(ctx context.Context, propertyID uuid.UUID, roomType string) (*property_models.RoomType, error)
	GetPropertyHost(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error)
}

// BookingStore is the booking persistence contract the engine drives.
type BookingStore interface {
	Create(ctx context.Context, booking *booking_models.Booking) (*booking_models.Booking, error)
	GetByID(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error)
	TransitionStatus(ctx context.Context, bookingID uuid.UUID, from, to string) (*booking_models.Booking, error)
	MarkCancelled(ctx context.Context, bookingID uuid.UUID, from, reason string) (*booking_models.Booking, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]booking_models.Booking, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]booking_models.Booking, error)
}

// Notifier receives status change events. Delivery is best effort and must
// never influence the outcome of a transition.
type Notifier interface {
	BookingStatusChanged(booking *booking_models.Booking, previous, current string)
}

// Actor is the authenticated caller of an engine operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

const (
	redisBookingRequestPrefix = "booking_request:"
	redisBookingRequestTTL    = 10 * time.Minute
)

// BookingService is the booking lifecycle engine. It owns the status state
// machine and is the only component that calls the inventory mutation
// primitives, so a status transition and its counter effect always travel
// together.
type BookingService struct {
	Inventory InventoryStore
	Bookings  BookingStore
	Notifier  Notifier
	Redis     *redis.Client
}

// NewBookingService creates the lifecycle engine. Redis and notifier are
// optional; without Redis the duplicate-submit guard is skipped.
func NewBookingService(inventory InventoryStore, bookings BookingStore, notifier Notifier, rdb *redis.Client) *BookingService {
	return &BookingService{
		Inventory: inventory,
		Bookings:  bookings,
		Notifier:  notifier,
		Redis:     rdb,
	}
}

// CreateBookingParams carries everything needed to open a booking.
type CreateBookingParams struct {
	PropertyID uuid.UUID
	RoomType   string
	CustomerID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

// CreateBooking validates the request and opens a pending booking. The
// capacity check here is advisory: it keeps hopeless requests out of the
// queue, but the authoritative reservation happens at approval time via
// TryReserve, because the counter can change between now and then.
func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (*booking_models.Booking, error) {
	if !params.CheckOut.After(params.CheckIn) {
		return nil, ErrInvalidDates
	}

	rt, err := s.Inventory.GetRoomType(ctx, params.PropertyID, params.RoomType)
	if err != nil {
		return nil, err
	}

	if params.Guests < 1 || (rt.CustomerCapacity > 0 && params.Guests > rt.CustomerCapacity) {
		return nil, ErrInvalidGuests
	}

	hasCapacity, err := s.Inventory.HasCapacity(ctx, params.PropertyID, params.RoomType)
	if err != nil {
		return nil, err
	}
	if !hasCapacity {
		return nil, property_models.ErrInsufficientCapacity
	}

	hostID, err := s.Inventory.GetPropertyHost(ctx, params.PropertyID)
	if err != nil {
		return nil, err
	}

	if err := s.holdBookingRequest(ctx, params); err != nil {
		return nil, err
	}

	booking, err := booking_models.NewBooking(
		params.PropertyID, params.RoomType, params.CustomerID, hostID,
		params.CheckIn, params.CheckOut, params.Guests, rt.PricePerNight,
	)
	if err != nil {
		return nil, fmt.Errorf("internal error creating booking: %w", err)
	}

	created, err := s.Bookings.Create(ctx, booking)
	if err != nil {
		s.releaseBookingRequest(ctx, params)
		return nil, err
	}

	s.notify(created, "")
	return created, nil
}

// Approve moves a pending booking to confirmed. The room is reserved
// first; only when the counter decrement succeeds is the status flipped
// with a pending guard. If the flip loses a race (the booking was
// cancelled in between), the reservation is compensated with a release so
// no room leaks.
func (s *BookingService) Approve(ctx context.Context, bookingID uuid.UUID, actor Actor) (*booking_models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeHost(booking, actor); err != nil {
		return nil, err
	}

	switch booking.Status {
	case shared_models.BookingStatusConfirmed:
		// Retried approval after a success: nothing left to do.
		logger.InfoLogger.Infof("Booking %s already confirmed, approve is a no-op", bookingID)
		return booking, nil
	case shared_models.BookingStatusCancelled, shared_models.BookingStatusCompleted:
		return nil, ErrAlreadyTerminal
	}

	if err := s.Inventory.TryReserve(ctx, booking.PropertyID, booking.RoomType); err != nil {
		return nil, err
	}

	confirmed, err := s.Bookings.TransitionStatus(ctx, bookingID,
		shared_models.BookingStatusPending, shared_models.BookingStatusConfirmed)
	if err != nil {
		// The booking moved on while we held the room; give it back.
		if relErr := s.Inventory.Release(ctx, booking.PropertyID, booking.RoomType); relErr != nil {
			logger.ErrorLogger.Errorf("CONSISTENCY: failed to release room after lost approval race on booking %s: %v", bookingID, relErr)
		}
		if errors.Is(err, booking_models.ErrStaleStatus) {
			current, getErr := s.Bookings.GetByID(ctx, bookingID)
			if getErr == nil && current.Status == shared_models.BookingStatusConfirmed {
				// A concurrent approval won; treat like the retry case.
				return current, nil
			}
		}
		return nil, err
	}

	s.notify(confirmed, shared_models.BookingStatusPending)
	return confirmed, nil
}

// Reject declines a pending booking. The room was never reserved, so there
// is no inventory effect. Rejecting an already-cancelled booking is a
// no-op, not an error, so host retries are harmless.
func (s *BookingService) Reject(ctx context.Context, bookingID uuid.UUID, actor Actor, reason string) (*booking_models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeHost(booking, actor); err != nil {
		return nil, err
	}

	switch booking.Status {
	case shared_models.BookingStatusCancelled:
		logger.InfoLogger.Infof("Booking %s already cancelled, reject is a no-op", bookingID)
		return booking, nil
	case shared_models.BookingStatusConfirmed, shared_models.BookingStatusCompleted:
		return nil, ErrAlreadyTerminal
	}

	if reason == "" {
		reason = "rejected by host"
	}

	cancelled, err := s.Bookings.MarkCancelled(ctx, bookingID, shared_models.BookingStatusPending, reason)
	if err != nil {
		if errors.Is(err, booking_models.ErrStaleStatus) {
			current, getErr := s.Bookings.GetByID(ctx, bookingID)
			if getErr == nil && current.Status == shared_models.BookingStatusCancelled {
				return current, nil
			}
		}
		return nil, err
	}

	s.notify(cancelled, shared_models.BookingStatusPending)
	return cancelled, nil
}

// Cancel is the customer (or admin) cancellation. A pending booking just
// flips to cancelled; a confirmed booking flips and then releases exactly
// the one room its approval reserved. A release failure after the flip is
// a consistency error: it is reported loudly, never hidden.
func (s *BookingService) Cancel(ctx context.Context, bookingID uuid.UUID, actor Actor, reason string) (*booking_models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != shared_models.RoleAdmin && booking.CustomerID != actor.ID {
		return nil, ErrNotAuthorized
	}

	switch booking.Status {
	case shared_models.BookingStatusCancelled:
		logger.InfoLogger.Infof("Booking %s already cancelled, cancel is a no-op", bookingID)
		return booking, nil
	case shared_models.BookingStatusCompleted:
		return nil, ErrAlreadyTerminal
	}

	previous := booking.Status
	cancelled, err := s.Bookings.MarkCancelled(ctx, bookingID, previous, reason)
	if err != nil {
		if errors.Is(err, booking_models.ErrStaleStatus) {
			current, getErr := s.Bookings.GetByID(ctx, bookingID)
			if getErr == nil && current.Status == shared_models.BookingStatusCancelled {
				return current, nil
			}
		}
		return nil, err
	}

	if previous == shared_models.BookingStatusConfirmed {
		if err := s.Inventory.Release(ctx, cancelled.PropertyID, cancelled.RoomType); err != nil {
			logger.ErrorLogger.Errorf("CONSISTENCY: failed to release room for cancelled booking %s: %v", bookingID, err)
			return nil, fmt.Errorf("booking cancelled but room release failed: %w", err)
		}
	}

	s.notify(cancelled, previous)
	return cancelled, nil
}

// CompleteStay marks a booking completed after checkout. Triggering this
// on time is outside the engine; it only enforces the transition. There is
// no inventory effect: completed bookings keep their room out of the pool,
// matching the pooled-counter semantics.
func (s *BookingService) CompleteStay(ctx context.Context, bookingID uuid.UUID, actor Actor) (*booking_models.Booking, error) {
	if actor.Role != shared_models.RoleAdmin {
		return nil, ErrNotAuthorized
	}

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case shared_models.BookingStatusCompleted:
		return booking, nil
	case shared_models.BookingStatusCancelled:
		return nil, ErrAlreadyTerminal
	}

	previous := booking.Status
	completed, err := s.Bookings.TransitionStatus(ctx, bookingID, previous, shared_models.BookingStatusCompleted)
	if err != nil {
		return nil, err
	}

	s.notify(completed, previous)
	return completed, nil
}

// HasCapacity exposes the advisory availability snapshot.
func (s *BookingService) HasCapacity(ctx context.Context, propertyID uuid.UUID, roomType string) (bool, error) {
	return s.Inventory.HasCapacity(ctx, propertyID, roomType)
}

func (s *BookingService) authorizeHost(booking *booking_models.Booking, actor Actor) error {
	if actor.Role == shared_models.RoleAdmin {
		return nil
	}
	if actor.Role == shared_models.RoleHost && booking.HostID == actor.ID {
		return nil
	}
	return ErrNotAuthorized
}

func bookingRequestKey(params CreateBookingParams) string {
	return fmt.Sprintf("%s%s:%s:%s", redisBookingRequestPrefix,
		params.PropertyID, params.RoomType, params.CustomerID)
}

// holdBookingRequest takes a short-lived SetNX hold so a double-clicked
// submit does not open two identical pending bookings.
func (s *BookingService) holdBookingRequest(ctx context.Context, params CreateBookingParams) error {
	if s.Redis == nil {
		return nil
	}

	set, err := s.Redis.SetNX(ctx, bookingRequestKey(params), time.Now().Format(time.RFC3339), redisBookingRequestTTL).Result()
	if err != nil {
		logger.ErrorLogger.Errorf("Redis error holding booking request for property %s: %v", params.PropertyID, err)
		return fmt.Errorf("failed to hold booking request: %w", err)
	}
	if !set {
		return ErrDuplicateRequest
	}
	return nil
}

func (s *BookingService) releaseBookingRequest(ctx context.Context, params CreateBookingParams) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, bookingRequestKey(params)).Err(); err != nil {
		logger.ErrorLogger.Errorf("Failed to release booking request hold for property %s: %v", params.PropertyID, err)
	}
}

// notify fires the status change event without blocking or failing the
// transition.
func (s *BookingService) notify(booking *booking_models.Booking, previous string) {
	if s.Notifier == nil {
		return
	}
	b := *booking
	go s.Notifier.BookingStatusChanged(&b, previous, b.Status)
}

package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/models/shared_models"
)

// Booking is a customer's request for one room of a given type. Status is
// the single source of truth for the lifecycle; there is no separate
// approval flag. Cancellations keep the record for audit.
type Booking struct {
	ID                 uuid.UUID  `json:"id"`
	PropertyID         uuid.UUID  `json:"property_id"`
	RoomType           string     `json:"room_type"`
	CustomerID         uuid.UUID  `json:"customer_id"`
	HostID             uuid.UUID  `json:"host_id"`
	CheckIn            time.Time  `json:"check_in"`
	CheckOut           time.Time  `json:"check_out"`
	NumberOfGuests     int        `json:"number_of_guests"`
	Status             string     `json:"status"`
	TotalAmount        int64      `json:"total_amount"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Nights returns the length of the stay in nights.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// NewBooking builds a pending booking. TotalAmount is computed once here
// (nights x price per night) and never recomputed afterwards.
func NewBooking(propertyID uuid.UUID, roomType string, customerID, hostID uuid.UUID, checkIn, checkOut time.Time, guests int, pricePerNight int64) (*Booking, error) {
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out must be after check-in")
	}
	if guests < 1 {
		return nil, fmt.Errorf("at least one guest is required")
	}

	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}

	nights := int64(checkOut.Sub(checkIn).Hours() / 24)
	now := time.Now()
	return &Booking{
		ID:             id,
		PropertyID:     propertyID,
		RoomType:       roomType,
		CustomerID:     customerID,
		HostID:         hostID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: guests,
		Status:         shared_models.BookingStatusPending,
		TotalAmount:    nights * pricePerNight,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// BookingStore persists bookings. All status changes go through the
// status-guarded methods so that concurrent transitions on the same
// booking resolve to exactly one winner.
type BookingStore struct {
	DB *pgxpool.Pool
}

// NewBookingStore creates a BookingStore over the given pool.
func NewBookingStore(db *pgxpool.Pool) *BookingStore {
	return &BookingStore{DB: db}
}

const bookingColumns = `id, property_id, room_type, customer_id, host_id, check_in, check_out,
	number_of_guests, status, total_amount, cancellation_reason, cancelled_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	b := &Booking{}
	err := row.Scan(
		&b.ID, &b.PropertyID, &b.RoomType, &b.CustomerID, &b.HostID,
		&b.CheckIn, &b.CheckOut, &b.NumberOfGuests, &b.Status, &b.TotalAmount,
		&b.CancellationReason, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a new booking record.
func (s *BookingStore) Create(ctx context.Context, booking *Booking) (*Booking, error) {
	logger.InfoLogger.Infof("Creating booking %s for property %s (%s)", booking.ID, booking.PropertyID, booking.RoomType)

	query := `
		INSERT INTO bookings (
			id, property_id, room_type, customer_id, host_id, check_in, check_out,
			number_of_guests, status, total_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var insertedID uuid.UUID
	err := s.DB.QueryRow(ctx, query,
		booking.ID, booking.PropertyID, booking.RoomType, booking.CustomerID, booking.HostID,
		booking.CheckIn, booking.CheckOut, booking.NumberOfGuests, booking.Status,
		booking.TotalAmount, booking.CreatedAt, booking.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking %s: %v", booking.ID, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = insertedID
	logger.InfoLogger.Infof("Booking %s created (status %s)", booking.ID, booking.Status)
	return booking, nil
}

// GetByID fetches a booking.
func (s *BookingStore) GetByID(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}
	return b, nil
}

// TransitionStatus moves a booking from one status to another with a
// conditional update. The WHERE clause on the current status is what makes
// concurrent transitions race-safe: the loser matches zero rows and gets
// ErrStaleStatus.
func (s *BookingStore) TransitionStatus(ctx context.Context, bookingID uuid.UUID, from, to string) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + bookingColumns

	row := s.DB.QueryRow(ctx, query, bookingID, from, to)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.staleOrMissing(ctx, bookingID)
		}
		logger.ErrorLogger.Errorf("Failed to transition booking %s from %s to %s: %v", bookingID, from, to, err)
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s transitioned %s -> %s", bookingID, from, to)
	return b, nil
}

// MarkCancelled is the cancellation form of TransitionStatus: same status
// guard, plus the audit fields the record keeps instead of being deleted.
func (s *BookingStore) MarkCancelled(ctx context.Context, bookingID uuid.UUID, from, reason string) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, cancelled_at = NOW(), cancellation_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + bookingColumns

	var reasonParam *string
	if reason != "" {
		reasonParam = &reason
	}

	row := s.DB.QueryRow(ctx, query, bookingID, from, shared_models.BookingStatusCancelled, reasonParam)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.staleOrMissing(ctx, bookingID)
		}
		logger.ErrorLogger.Errorf("Failed to cancel booking %s from %s: %v", bookingID, from, err)
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s cancelled (was %s)", bookingID, from)
	return b, nil
}

// staleOrMissing distinguishes "booking gone" from "booking moved on".
func (s *BookingStore) staleOrMissing(ctx context.Context, bookingID uuid.UUID) error {
	var exists bool
	if err := s.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, bookingID).Scan(&exists); err != nil {
		return fmt.Errorf("database error checking booking existence: %w", err)
	}
	if !exists {
		return ErrBookingNotFound
	}
	return ErrStaleStatus
}

// ListByCustomer returns a customer's bookings, newest first.
func (s *BookingStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Booking, error) {
	return s.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

// ListByProperty returns all bookings against a property, newest first.
func (s *BookingStore) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]Booking, error) {
	return s.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE property_id = $1 ORDER BY created_at DESC`, propertyID)
}

func (s *BookingStore) list(ctx context.Context, query string, arg any) ([]Booking, error) {
	rows, err := s.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("database error listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

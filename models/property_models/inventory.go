package property_models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/models/shared_models"
)

// InventoryStore owns the room capacity counters. Its three mutation
// primitives are the only legal writers of total_rooms/available_rooms;
// each one is a single conditional UPDATE (or a row-locked transaction for
// SetCapacity), so concurrent callers are serialized by the database and
// a counter can never be lost to a read-modify-write race.
type InventoryStore struct {
	DB *pgxpool.Pool
}

// NewInventoryStore creates an InventoryStore over the given pool.
func NewInventoryStore(db *pgxpool.Pool) *InventoryStore {
	return &InventoryStore{DB: db}
}

// TryReserve atomically decrements available_rooms by one, but only while
// it is positive. Returns ErrInsufficientCapacity when no room is free at
// the moment of the attempt; that is an expected outcome, not a failure.
func (s *InventoryStore) TryReserve(ctx context.Context, propertyID uuid.UUID, roomType string) error {
	query := `
		UPDATE room_types
		SET available_rooms = available_rooms - 1, updated_at = NOW()
		WHERE property_id = $1 AND room_type = $2 AND available_rooms > 0`

	cmdTag, err := s.DB.Exec(ctx, query, propertyID, roomType)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to reserve %s room on property %s: %v", roomType, propertyID, err)
		return fmt.Errorf("failed to reserve room: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := s.GetRoomType(ctx, propertyID, roomType); err != nil {
			return err
		}
		logger.InfoLogger.Infof("No %s rooms left on property %s", roomType, propertyID)
		return ErrInsufficientCapacity
	}

	logger.InfoLogger.Infof("Reserved one %s room on property %s", roomType, propertyID)
	return nil
}

// Release atomically returns one room to the pool, guarded so the counter
// can never exceed total_rooms. A guard trip means some caller released a
// room it never held, which is a bug upstream; it is reported loudly and
// never clamped away.
func (s *InventoryStore) Release(ctx context.Context, propertyID uuid.UUID, roomType string) error {
	query := `
		UPDATE room_types
		SET available_rooms = available_rooms + 1, updated_at = NOW()
		WHERE property_id = $1 AND room_type = $2 AND available_rooms < total_rooms`

	cmdTag, err := s.DB.Exec(ctx, query, propertyID, roomType)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to release %s room on property %s: %v", roomType, propertyID, err)
		return fmt.Errorf("failed to release room: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := s.GetRoomType(ctx, propertyID, roomType); err != nil {
			return err
		}
		logger.ErrorLogger.Errorf("CONSISTENCY: release of %s room on property %s would exceed total rooms (double release?)", roomType, propertyID)
		return ErrOverCapacity
	}

	logger.InfoLogger.Infof("Released one %s room on property %s", roomType, propertyID)
	return nil
}

// SetCapacity is the host-facing capacity edit. It locks the counter row,
// rejects values that break 0 <= available <= total, and rejects edits
// that would hand out rooms currently held by confirmed bookings.
func (s *InventoryStore) SetCapacity(ctx context.Context, propertyID uuid.UUID, roomType string, totalRooms, availableRooms int) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin capacity transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var rtID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM room_types
		WHERE property_id = $1 AND room_type = $2
		FOR UPDATE`, propertyID, roomType).Scan(&rtID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoomTypeNotFound
		}
		return fmt.Errorf("failed to lock room type row: %w", err)
	}

	var held int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE property_id = $1 AND room_type = $2 AND status = $3`,
		propertyID, roomType, shared_models.BookingStatusConfirmed).Scan(&held)
	if err != nil {
		return fmt.Errorf("failed to count confirmed bookings: %w", err)
	}

	if err := ValidateCapacity(totalRooms, availableRooms, held); err != nil {
		logger.WarnLogger.Warnf("Rejected capacity edit on property %s room type %s (total=%d available=%d held=%d): %v",
			propertyID, roomType, totalRooms, availableRooms, held, err)
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE room_types
		SET total_rooms = $2, available_rooms = $3, updated_at = NOW()
		WHERE id = $1`, rtID, totalRooms, availableRooms)
	if err != nil {
		return fmt.Errorf("failed to update capacity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit capacity update: %w", err)
	}

	logger.InfoLogger.Infof("Capacity for %s rooms on property %s set to total=%d available=%d",
		roomType, propertyID, totalRooms, availableRooms)
	return nil
}

// ValidateCapacity checks a proposed (total, available) pair against the
// number of rooms held by confirmed bookings. Held rooms are outside the
// pool, so available can be at most total - held.
func ValidateCapacity(totalRooms, availableRooms, held int) error {
	if totalRooms < 0 || availableRooms < 0 {
		return ErrInvalidCapacity
	}
	if availableRooms > totalRooms {
		return ErrInvalidCapacity
	}
	if availableRooms > totalRooms-held {
		return ErrInvalidCapacity
	}
	return nil
}

// HasCapacity is a snapshot read used as a UX hint before booking
// creation. It is advisory only: the counter can change between this read
// and a later TryReserve, so absence of capacity here never guarantees the
// reserve outcome either way.
func (s *InventoryStore) HasCapacity(ctx context.Context, propertyID uuid.UUID, roomType string) (bool, error) {
	var available int
	err := s.DB.QueryRow(ctx, `
		SELECT available_rooms FROM room_types
		WHERE property_id = $1 AND room_type = $2`, propertyID, roomType).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrRoomTypeNotFound
		}
		return false, fmt.Errorf("database error checking capacity: %w", err)
	}
	return available > 0, nil
}

// GetPropertyHost returns the owning host of a property.
func (s *InventoryStore) GetPropertyHost(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	var hostID uuid.UUID
	err := s.DB.QueryRow(ctx, `SELECT host_id FROM properties WHERE id = $1`, propertyID).Scan(&hostID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrPropertyNotFound
		}
		return uuid.Nil, fmt.Errorf("database error fetching property host: %w", err)
	}
	return hostID, nil
}

// GetRoomType fetches a room type snapshot.
func (s *InventoryStore) GetRoomType(ctx context.Context, propertyID uuid.UUID, roomType string) (*RoomType, error) {
	rt := &RoomType{}
	err := s.DB.QueryRow(ctx, `
		SELECT id, property_id, room_type, total_rooms, available_rooms,
		       price_per_night, customer_capacity, amenities, created_at, updated_at
		FROM room_types
		WHERE property_id = $1 AND room_type = $2`, propertyID, roomType).Scan(
		&rt.ID, &rt.PropertyID, &rt.RoomType, &rt.TotalRooms, &rt.AvailableRooms,
		&rt.PricePerNight, &rt.CustomerCapacity, &rt.Amenities, &rt.CreatedAt, &rt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("database error fetching room type: %w", err)
	}
	return rt, nil
}

package property_models

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

// Property is a host-owned listing with a set of room types.
type Property struct {
	ID          uuid.UUID  `json:"id"`
	HostID      uuid.UUID  `json:"host_id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Description string     `json:"description"`
	BasePrice   int64      `json:"base_price"`
	RoomTypes   []RoomType `json:"room_types,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RoomType is one pooled capacity bucket within a property. AvailableRooms
// is only ever mutated through the InventoryStore primitives.
type RoomType struct {
	ID               uuid.UUID `json:"id"`
	PropertyID       uuid.UUID `json:"property_id"`
	RoomType         string    `json:"room_type"`
	TotalRooms       int       `json:"total_rooms"`
	AvailableRooms   int       `json:"available_rooms"`
	PricePerNight    int64     `json:"price_per_night"`
	CustomerCapacity int       `json:"customer_capacity"`
	Amenities        []string  `json:"amenities"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProperty builds a property record with a fresh UUIDv7.
func NewProperty(hostID uuid.UUID, name, address, description string, basePrice int64) (*Property, error) {
	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for property: %w", err)
	}
	now := time.Now()
	return &Property{
		ID:          id,
		HostID:      hostID,
		Name:        name,
		Address:     address,
		Description: description,
		BasePrice:   basePrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CreateProperty inserts a property together with its room types in one
// transaction. Every room type starts with available_rooms = total_rooms.
func CreateProperty(ctx context.Context, db *pgxpool.Pool, property *Property) (*Property, error) {
	logger.InfoLogger.Infof("Creating property %s for host %s", property.ID, property.HostID)

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO properties (
			id, host_id, name, address, description, base_price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := tx.Exec(ctx, query,
		property.ID, property.HostID, property.Name, property.Address,
		property.Description, property.BasePrice, property.CreatedAt, property.UpdatedAt,
	); err != nil {
		logger.ErrorLogger.Errorf("Failed to insert property %s: %v", property.ID, err)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	for i := range property.RoomTypes {
		rt := &property.RoomTypes[i]
		if !shared_models.IsValidRoomType(rt.RoomType) {
			return nil, fmt.Errorf("%w: %s", ErrRoomTypeNotFound, rt.RoomType)
		}
		if rt.TotalRooms < 0 {
			return nil, ErrInvalidCapacity
		}
		id, err := shared_models.GenerateUUIDv7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate UUID for room type: %w", err)
		}
		rt.ID = id
		rt.PropertyID = property.ID
		rt.AvailableRooms = rt.TotalRooms
		rt.CreatedAt = property.CreatedAt
		rt.UpdatedAt = property.UpdatedAt

		rtQuery := `
			INSERT INTO room_types (
				id, property_id, room_type, total_rooms, available_rooms,
				price_per_night, customer_capacity, amenities, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

		if _, err := tx.Exec(ctx, rtQuery,
			rt.ID, rt.PropertyID, rt.RoomType, rt.TotalRooms, rt.AvailableRooms,
			rt.PricePerNight, rt.CustomerCapacity, rt.Amenities, rt.CreatedAt, rt.UpdatedAt,
		); err != nil {
			logger.ErrorLogger.Errorf("Failed to insert room type %s for property %s: %v", rt.RoomType, property.ID, err)
			return nil, fmt.Errorf("failed to create room type: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit property creation: %w", err)
	}

	logger.InfoLogger.Infof("Property %s created with %d room types", property.ID, len(property.RoomTypes))
	return property, nil
}

// GetPropertyByID fetches a property and its room types.
func GetPropertyByID(ctx context.Context, db *pgxpool.Pool, propertyID uuid.UUID) (*Property, error) {
	property := &Property{}
	query := `
		SELECT id, host_id, name, address, description, base_price, created_at, updated_at
		FROM properties
		WHERE id = $1`

	err := db.QueryRow(ctx, query, propertyID).Scan(
		&property.ID, &property.HostID, &property.Name, &property.Address,
		&property.Description, &property.BasePrice, &property.CreatedAt, &property.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch property %s: %v", propertyID, err)
		return nil, fmt.Errorf("database error fetching property: %w", err)
	}

	rows, err := db.Query(ctx, `
		SELECT id, property_id, room_type, total_rooms, available_rooms,
		       price_per_night, customer_capacity, amenities, created_at, updated_at
		FROM room_types
		WHERE property_id = $1
		ORDER BY room_type`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("database error fetching room types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(
			&rt.ID, &rt.PropertyID, &rt.RoomType, &rt.TotalRooms, &rt.AvailableRooms,
			&rt.PricePerNight, &rt.CustomerCapacity, &rt.Amenities, &rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan room type: %w", err)
		}
		property.RoomTypes = append(property.RoomTypes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading room types: %w", err)
	}

	return property, nil
}

// UpdatePropertyDetails updates descriptive fields only. Capacity counters
// are out of reach of this path on purpose; they go through
// InventoryStore.SetCapacity.
func UpdatePropertyDetails(ctx context.Context, db *pgxpool.Pool, propertyID uuid.UUID, name, address, description string, basePrice int64) error {
	query := `
		UPDATE properties
		SET name = $2, address = $3, description = $4, base_price = $5, updated_at = NOW()
		WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query, propertyID, name, address, description, basePrice)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update property %s: %v", propertyID, err)
		return fmt.Errorf("failed to update property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// ListPropertiesByHost returns all properties owned by a host, without
// room type detail.
func ListPropertiesByHost(ctx context.Context, db *pgxpool.Pool, hostID uuid.UUID) ([]Property, error) {
	rows, err := db.Query(ctx, `
		SELECT id, host_id, name, address, description, base_price, created_at, updated_at
		FROM properties
		WHERE host_id = $1
		ORDER BY created_at DESC`, hostID)
	if err != nil {
		return nil, fmt.Errorf("database error listing properties: %w", err)
	}
	defer rows.Close()

	var properties []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(
			&p.ID, &p.HostID, &p.Name, &p.Address,
			&p.Description, &p.BasePrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

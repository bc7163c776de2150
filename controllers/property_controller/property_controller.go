package property_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joy095/booking/badwords"
	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/models/property_models"
	"github.com/joy095/booking/models/shared_models"
	"github.com/joy095/booking/utils"
)

// PropertyController exposes host property management. Capacity counters
// are only touched through the guarded InventoryStore.SetCapacity path.
type PropertyController struct {
	DB        *pgxpool.Pool
	Inventory *property_models.InventoryStore
}

// NewPropertyController creates a PropertyController.
func NewPropertyController(db *pgxpool.Pool) *PropertyController {
	return &PropertyController{
		DB:        db,
		Inventory: property_models.NewInventoryStore(db),
	}
}

type roomTypeRequest struct {
	RoomType         string   `json:"room_type" binding:"required"`
	TotalRooms       int      `json:"total_rooms" binding:"gte=0"`
	PricePerNight    int64    `json:"price_per_night" binding:"required,gt=0"`
	CustomerCapacity int      `json:"customer_capacity" binding:"required,gte=1"`
	Amenities        []string `json:"amenities"`
}

type createPropertyRequest struct {
	Name        string            `json:"name" binding:"required"`
	Address     string            `json:"address" binding:"required"`
	Description string            `json:"description"`
	BasePrice   int64             `json:"base_price" binding:"gte=0"`
	RoomTypes   []roomTypeRequest `json:"room_types" binding:"required,min=1,dive"`
}

// CreateProperty handles POST /properties.
func (pc *PropertyController) CreateProperty(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	hostID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if badwords.ContainsBadWords(req.Name) || badwords.ContainsBadWords(req.Description) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property name or description contains prohibited language"})
		return
	}

	for _, rt := range req.RoomTypes {
		if !shared_models.IsValidRoomType(rt.RoomType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown room type: " + rt.RoomType})
			return
		}
	}

	property, err := property_models.NewProperty(hostID, req.Name, req.Address, req.Description, req.BasePrice)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to build property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	for _, rt := range req.RoomTypes {
		property.RoomTypes = append(property.RoomTypes, property_models.RoomType{
			RoomType:         rt.RoomType,
			TotalRooms:       rt.TotalRooms,
			PricePerNight:    rt.PricePerNight,
			CustomerCapacity: rt.CustomerCapacity,
			Amenities:        rt.Amenities,
		})
	}

	created, err := property_models.CreateProperty(c.Request.Context(), pc.DB, property)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetProperty handles GET /public/properties/:property_id.
func (pc *PropertyController) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	property, err := property_models.GetPropertyByID(c.Request.Context(), pc.DB, propertyID)
	if err != nil {
		pc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// ListMyProperties handles GET /host/properties.
func (pc *PropertyController) ListMyProperties(c *gin.Context) {
	hostID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	properties, err := property_models.ListPropertiesByHost(c.Request.Context(), pc.DB, hostID)
	if err != nil {
		pc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

type updatePropertyRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
	BasePrice   int64  `json:"base_price" binding:"gte=0"`
}

// UpdateProperty handles PATCH /properties/:property_id. Descriptive
// fields only; room counters are out of reach of this endpoint.
func (pc *PropertyController) UpdateProperty(c *gin.Context) {
	propertyID, hostID, ok := pc.authorizeOwner(c)
	if !ok {
		return
	}

	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if badwords.ContainsBadWords(req.Name) || badwords.ContainsBadWords(req.Description) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property name or description contains prohibited language"})
		return
	}

	if err := property_models.UpdatePropertyDetails(c.Request.Context(), pc.DB, propertyID,
		req.Name, req.Address, req.Description, req.BasePrice); err != nil {
		pc.respondError(c, err)
		return
	}

	logger.InfoLogger.Infof("Property %s updated by host %s", propertyID, hostID)
	c.JSON(http.StatusOK, gin.H{"message": "Property updated"})
}

type setCapacityRequest struct {
	TotalRooms     int `json:"total_rooms" binding:"gte=0"`
	AvailableRooms int `json:"available_rooms" binding:"gte=0"`
}

// SetCapacity handles PUT /properties/:property_id/room-types/:room_type/capacity.
// The store rejects edits that would break the counter invariant or claim
// rooms held by confirmed bookings.
func (pc *PropertyController) SetCapacity(c *gin.Context) {
	propertyID, _, ok := pc.authorizeOwner(c)
	if !ok {
		return
	}

	var req setCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	roomType := c.Param("room_type")
	if err := pc.Inventory.SetCapacity(c.Request.Context(), propertyID, roomType, req.TotalRooms, req.AvailableRooms); err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Capacity updated"})
}

// authorizeOwner parses the property ID and verifies the caller owns the
// property (admins pass through).
func (pc *PropertyController) authorizeOwner(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return uuid.Nil, uuid.Nil, false
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}

	if utils.GetUserRoleFromContext(c) != shared_models.RoleAdmin {
		hostID, err := pc.Inventory.GetPropertyHost(c.Request.Context(), propertyID)
		if err != nil {
			pc.respondError(c, err)
			return uuid.Nil, uuid.Nil, false
		}
		if hostID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this property"})
			return uuid.Nil, uuid.Nil, false
		}
	}

	return propertyID, userID, true
}

func (pc *PropertyController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, property_models.ErrPropertyNotFound),
		errors.Is(err, property_models.ErrRoomTypeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, property_models.ErrInvalidCapacity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid capacity: available rooms must fit within total rooms not held by confirmed bookings"})
	default:
		logger.ErrorLogger.Errorf("Unhandled property error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

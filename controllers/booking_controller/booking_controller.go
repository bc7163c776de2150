package booking_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joy095/booking/badwords"
	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/models/booking_models"
	"github.com/joy095/booking/models/property_models"
	"github.com/joy095/booking/models/shared_models"
	"github.com/joy095/booking/utils"
)

// BookingController exposes the lifecycle engine over HTTP.
type BookingController struct {
	Service *BookingService
}

// NewBookingController creates a controller around a lifecycle engine.
func NewBookingController(service *BookingService) *BookingController {
	return &BookingController{Service: service}
}

const dateLayout = "2006-01-02"

// CreateBookingRequest is the customer-facing booking submission.
type CreateBookingRequest struct {
	PropertyID     uuid.UUID `json:"property_id" binding:"required"`
	RoomType       string    `json:"room_type" binding:"required"`
	CheckIn        string    `json:"check_in" binding:"required"`
	CheckOut       string    `json:"check_out" binding:"required"`
	NumberOfGuests int       `json:"number_of_guests" binding:"required,gte=1"`
}

// Book handles POST /bookings.
func (bc *BookingController) Book(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_in date, expected YYYY-MM-DD"})
		return
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_out date, expected YYYY-MM-DD"})
		return
	}

	booking, err := bc.Service.CreateBooking(c.Request.Context(), CreateBookingParams{
		PropertyID: req.PropertyID,
		RoomType:   req.RoomType,
		CustomerID: customerID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.NumberOfGuests,
	})
	if err != nil {
		bc.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// Approve handles POST /bookings/:booking_id/approve.
func (bc *BookingController) Approve(c *gin.Context) {
	bc.transition(c, func(id uuid.UUID, actor Actor) (*booking_models.Booking, error) {
		return bc.Service.Approve(c.Request.Context(), id, actor)
	})
}

// Reject handles POST /bookings/:booking_id/reject.
func (bc *BookingController) Reject(c *gin.Context) {
	reason, ok := bc.bindReason(c)
	if !ok {
		return
	}
	bc.transition(c, func(id uuid.UUID, actor Actor) (*booking_models.Booking, error) {
		return bc.Service.Reject(c.Request.Context(), id, actor, reason)
	})
}

// Cancel handles POST /bookings/:booking_id/cancel.
func (bc *BookingController) Cancel(c *gin.Context) {
	reason, ok := bc.bindReason(c)
	if !ok {
		return
	}
	bc.transition(c, func(id uuid.UUID, actor Actor) (*booking_models.Booking, error) {
		return bc.Service.Cancel(c.Request.Context(), id, actor, reason)
	})
}

// Complete handles POST /bookings/:booking_id/complete.
func (bc *BookingController) Complete(c *gin.Context) {
	bc.transition(c, func(id uuid.UUID, actor Actor) (*booking_models.Booking, error) {
		return bc.Service.CompleteStay(c.Request.Context(), id, actor)
	})
}

// GetBooking handles GET /bookings/:booking_id.
func (bc *BookingController) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	actor, ok := bc.actorFromContext(c)
	if !ok {
		return
	}

	booking, err := bc.Service.Bookings.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	if actor.Role != shared_models.RoleAdmin && booking.CustomerID != actor.ID && booking.HostID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to view this booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListMyBookings handles GET /user/bookings.
func (bc *BookingController) ListMyBookings(c *gin.Context) {
	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookings, err := bc.Service.Bookings.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListPropertyBookings handles GET /host/properties/:property_id/bookings.
func (bc *BookingController) ListPropertyBookings(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	actor, ok := bc.actorFromContext(c)
	if !ok {
		return
	}
	if actor.Role != shared_models.RoleAdmin {
		hostID, err := bc.Service.Inventory.GetPropertyHost(c.Request.Context(), propertyID)
		if err != nil {
			bc.respondError(c, err)
			return
		}
		if hostID != actor.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to view bookings for this property"})
			return
		}
	}

	bookings, err := bc.Service.Bookings.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CheckAvailability handles the public advisory capacity query.
func (bc *BookingController) CheckAvailability(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	hasCapacity, err := bc.Service.HasCapacity(c.Request.Context(), propertyID, c.Param("room_type"))
	if err != nil {
		bc.respondError(c, err)
		return
	}

	// Advisory snapshot: capacity can change before a booking is approved.
	c.JSON(http.StatusOK, gin.H{"available": hasCapacity})
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// bindReason reads the optional reason body and screens it for
// prohibited language. An absent or malformed body is treated as no
// reason given.
func (bc *BookingController) bindReason(c *gin.Context) (string, bool) {
	var req reasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", true
	}
	if badwords.ContainsBadWords(req.Reason) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason contains prohibited language"})
		return "", false
	}
	return req.Reason, true
}

func (bc *BookingController) transition(c *gin.Context, apply func(uuid.UUID, Actor) (*booking_models.Booking, error)) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	actor, ok := bc.actorFromContext(c)
	if !ok {
		return
	}

	booking, err := apply(bookingID, actor)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (bc *BookingController) actorFromContext(c *gin.Context) (Actor, bool) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return Actor{}, false
	}
	return Actor{ID: userID, Role: utils.GetUserRoleFromContext(c)}, true
}

// respondError maps engine errors onto HTTP statuses. Expected outcomes
// (capacity, races) become 409s with user-facing messages; consistency
// errors surface as 500s after having been logged by the layer that
// detected them.
func (bc *BookingController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking_models.ErrBookingNotFound),
		errors.Is(err, property_models.ErrPropertyNotFound),
		errors.Is(err, property_models.ErrRoomTypeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidDates), errors.Is(err, ErrInvalidGuests):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, property_models.ErrInsufficientCapacity):
		c.JSON(http.StatusConflict, gin.H{"error": "No rooms of this type remain"})
	case errors.Is(err, booking_models.ErrStaleStatus):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking changed while processing, please refresh and retry"})
	case errors.Is(err, ErrAlreadyTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.ErrorLogger.Errorf("Unhandled booking error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

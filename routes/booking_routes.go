package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/joy095/booking/config/db"
	redisclient "github.com/joy095/booking/config/redis"
	"github.com/joy095/booking/controllers/booking_controller"
	middleware "github.com/joy095/booking/middlewares"
	"github.com/joy095/booking/middlewares/auth"
	"github.com/joy095/booking/models/booking_models"
	"github.com/joy095/booking/models/property_models"
	"github.com/joy095/booking/models/shared_models"
	"github.com/joy095/booking/utils/mail"
)

// RegisterBookingRoutes wires the booking lifecycle endpoints.
func RegisterBookingRoutes(router *gin.Engine) {
	service := booking_controller.NewBookingService(
		property_models.NewInventoryStore(db.DB),
		booking_models.NewBookingStore(db.DB),
		mail.NewMailer(),
		redisclient.GetRedisClient(),
	)
	controller := booking_controller.NewBookingController(service)

	// Customer actions
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/bookings",
			middleware.CombinedRateLimiter("create-booking", "10-1m", "50-10m"),
			controller.Book)
		protected.GET("/bookings/:booking_id",
			middleware.NewRateLimiter("60-1m", "get-booking"),
			controller.GetBooking)
		protected.POST("/bookings/:booking_id/cancel",
			middleware.NewRateLimiter("10-1m", "cancel-booking"),
			controller.Cancel)
		protected.GET("/user/bookings",
			middleware.NewRateLimiter("30-1m", "list-my-bookings"),
			controller.ListMyBookings)
	}

	// Host/admin decisions
	hostOnly := router.Group("/")
	hostOnly.Use(auth.AuthMiddleware(), auth.RequireRoles(shared_models.RoleHost, shared_models.RoleAdmin))
	{
		hostOnly.POST("/bookings/:booking_id/approve",
			middleware.NewRateLimiter("30-1m", "approve-booking"),
			controller.Approve)
		hostOnly.POST("/bookings/:booking_id/reject",
			middleware.NewRateLimiter("30-1m", "reject-booking"),
			controller.Reject)
		hostOnly.GET("/host/properties/:property_id/bookings",
			middleware.NewRateLimiter("30-1m", "list-property-bookings"),
			controller.ListPropertyBookings)
	}

	// Admin only
	adminOnly := router.Group("/")
	adminOnly.Use(auth.AuthMiddleware(), auth.RequireRoles(shared_models.RoleAdmin))
	{
		adminOnly.POST("/bookings/:booking_id/complete",
			middleware.NewRateLimiter("30-1m", "complete-booking"),
			controller.Complete)
	}

	// Public advisory availability check for customer browsing
	public := router.Group("/public")
	{
		public.GET("/properties/:property_id/room-types/:room_type/availability",
			middleware.NewRateLimiter("60-1m", "check-availability"),
			controller.CheckAvailability)
	}
}

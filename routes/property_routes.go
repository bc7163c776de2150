package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/joy095/booking/config/db"
	"github.com/joy095/booking/controllers/property_controller"
	middleware "github.com/joy095/booking/middlewares"
	"github.com/joy095/booking/middlewares/auth"
	"github.com/joy095/booking/models/shared_models"
)

// RegisterPropertyRoutes wires host property management and public reads.
func RegisterPropertyRoutes(router *gin.Engine) {
	controller := property_controller.NewPropertyController(db.DB)

	hostOnly := router.Group("/")
	hostOnly.Use(auth.AuthMiddleware(), auth.RequireRoles(shared_models.RoleHost, shared_models.RoleAdmin))
	{
		hostOnly.POST("/properties",
			middleware.CombinedRateLimiter("create-property", "5-1m", "20-10m"),
			controller.CreateProperty)
		hostOnly.PATCH("/properties/:property_id",
			middleware.NewRateLimiter("10-1m", "update-property"),
			controller.UpdateProperty)
		hostOnly.PUT("/properties/:property_id/room-types/:room_type/capacity",
			middleware.NewRateLimiter("10-1m", "set-capacity"),
			controller.SetCapacity)
		hostOnly.GET("/host/properties",
			middleware.NewRateLimiter("30-1m", "list-my-properties"),
			controller.ListMyProperties)
	}

	public := router.Group("/public")
	{
		public.GET("/properties/:property_id",
			middleware.NewRateLimiter("60-1m", "get-property"),
			controller.GetProperty)
	}
}

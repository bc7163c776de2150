package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joy095/booking/logger"
)

// GetUserIDFromContext extracts the authenticated user ID set by the auth
// middleware and parses it into a uuid.UUID.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, ErrUserIDNotFound
	}

	userIDStr, ok := value.(string)
	if !ok {
		logger.ErrorLogger.Errorf("User ID in context is not a string, actual type: %T", value)
		return uuid.Nil, fmt.Errorf("internal server error: invalid user ID format in context")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to parse user ID string '%s' to UUID: %v", userIDStr, err)
		return uuid.Nil, fmt.Errorf("internal server error: invalid user ID format")
	}
	return userID, nil
}

// GetUserRoleFromContext returns the role claim set by the auth
// middleware, defaulting to "customer" when absent.
func GetUserRoleFromContext(c *gin.Context) string {
	value, exists := c.Get("role")
	if !exists {
		return "customer"
	}
	role, ok := value.(string)
	if !ok {
		return "customer"
	}
	return role
}

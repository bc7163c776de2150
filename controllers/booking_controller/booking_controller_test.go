package booking_controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joy095/booking/controllers/booking_controller"
	"github.com/joy095/booking/models/shared_models"
)

// testAuth stands in for the JWT middleware and injects the actor.
func testAuth(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Set("role", role)
		c.Next()
	}
}

func newTestRouter(f *fixture, actorID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := booking_controller.NewBookingController(f.service)

	r := gin.New()
	authed := r.Group("/", testAuth(actorID, role))
	authed.POST("/bookings", controller.Book)
	authed.GET("/bookings/:booking_id", controller.GetBooking)
	authed.POST("/bookings/:booking_id/approve", controller.Approve)
	authed.POST("/bookings/:booking_id/reject", controller.Reject)
	authed.POST("/bookings/:booking_id/cancel", controller.Cancel)
	authed.GET("/user/bookings", controller.ListMyBookings)
	r.GET("/public/properties/:property_id/room-types/:room_type/availability", controller.CheckAvailability)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookEndpoint(t *testing.T) {
	f := newFixture(t, 5, 2)
	r := newTestRouter(f, f.customerID, shared_models.RoleCustomer)

	t.Run("CreatesPendingBooking", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/bookings", gin.H{
			"property_id":      f.propertyID.String(),
			"room_type":        shared_models.RoomTypeDeluxe,
			"check_in":         "2026-09-10",
			"check_out":        "2026-09-13",
			"number_of_guests": 2,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created struct {
			ID     uuid.UUID `json:"id"`
			Status string    `json:"status"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, shared_models.BookingStatusPending, created.Status)
		assert.NotEqual(t, uuid.Nil, created.ID)
	})

	t.Run("RejectsBadDateFormat", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/bookings", gin.H{
			"property_id":      f.propertyID.String(),
			"room_type":        shared_models.RoomTypeDeluxe,
			"check_in":         "10-09-2026",
			"check_out":        "2026-09-13",
			"number_of_guests": 2,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RejectsInvertedDates", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/bookings", gin.H{
			"property_id":      f.propertyID.String(),
			"room_type":        shared_models.RoomTypeDeluxe,
			"check_in":         "2026-09-13",
			"check_out":        "2026-09-10",
			"number_of_guests": 2,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnknownRoomTypeIs404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/bookings", gin.H{
			"property_id":      f.propertyID.String(),
			"room_type":        shared_models.RoomTypeExecutive,
			"check_in":         "2026-09-10",
			"check_out":        "2026-09-13",
			"number_of_guests": 2,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApproveEndpointCapacityConflict(t *testing.T) {
	f := newFixture(t, 5, 1)
	b1 := f.createPending(t)
	b2 := f.createPending(t)

	r := newTestRouter(f, f.hostID, shared_models.RoleHost)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/bookings/%s/approve", b1.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/bookings/%s/approve", b2.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "No rooms of this type remain")
}

func TestCancelEndpointForbiddenForStranger(t *testing.T) {
	f := newFixture(t, 5, 2)
	b := f.createPending(t)

	r := newTestRouter(f, uuid.New(), shared_models.RoleCustomer)
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/bookings/%s/cancel", b.ID), gin.H{"reason": "nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	f := newFixture(t, 5, 1)
	r := newTestRouter(f, f.customerID, shared_models.RoleCustomer)

	path := fmt.Sprintf("/public/properties/%s/room-types/%s/availability", f.propertyID, shared_models.RoomTypeDeluxe)
	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)

	b := f.createPending(t)
	_, err := f.service.Approve(context.Background(), b.ID, f.host())
	require.NoError(t, err)

	w = doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":false`)
}

func TestBookingNotFoundIs404(t *testing.T) {
	f := newFixture(t, 5, 2)
	r := newTestRouter(f, f.hostID, shared_models.RoleHost)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/bookings/%s/approve", uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

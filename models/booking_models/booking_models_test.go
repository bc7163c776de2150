package booking_models

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/models/shared_models"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_DIR", os.TempDir())
	logger.InitLoggers()
	os.Exit(m.Run())
}

func TestNewBooking(t *testing.T) {
	propertyID := uuid.New()
	customerID := uuid.New()
	hostID := uuid.New()
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	t.Run("ComputesAmountOnce", func(t *testing.T) {
		b, err := NewBooking(propertyID, shared_models.RoomTypeStandard, customerID, hostID, checkIn, checkOut, 2, 9000)
		require.NoError(t, err)
		assert.Equal(t, shared_models.BookingStatusPending, b.Status)
		assert.Equal(t, 4, b.Nights())
		assert.Equal(t, int64(4*9000), b.TotalAmount)
		assert.NotEqual(t, uuid.Nil, b.ID)
		assert.Equal(t, hostID, b.HostID)
	})

	t.Run("RejectsInvertedDates", func(t *testing.T) {
		_, err := NewBooking(propertyID, shared_models.RoomTypeStandard, customerID, hostID, checkOut, checkIn, 2, 9000)
		assert.Error(t, err)
	})

	t.Run("RejectsSameDayStay", func(t *testing.T) {
		_, err := NewBooking(propertyID, shared_models.RoomTypeStandard, customerID, hostID, checkIn, checkIn, 2, 9000)
		assert.Error(t, err)
	})

	t.Run("RejectsZeroGuests", func(t *testing.T) {
		_, err := NewBooking(propertyID, shared_models.RoomTypeStandard, customerID, hostID, checkIn, checkOut, 0, 9000)
		assert.Error(t, err)
	})
}

func TestIsTerminalStatus(t *testing.T) {
	assert.False(t, shared_models.IsTerminalStatus(shared_models.BookingStatusPending))
	assert.False(t, shared_models.IsTerminalStatus(shared_models.BookingStatusConfirmed))
	assert.True(t, shared_models.IsTerminalStatus(shared_models.BookingStatusCancelled))
	assert.True(t, shared_models.IsTerminalStatus(shared_models.BookingStatusCompleted))
}

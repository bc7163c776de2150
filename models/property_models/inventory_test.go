package property_models

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joy095/booking/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_DIR", os.TempDir())
	logger.InitLoggers()
	os.Exit(m.Run())
}

func TestValidateCapacity(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		available int
		held      int
		wantErr   error
	}{
		{"FullPoolNoBookings", 5, 5, 0, nil},
		{"PartialPool", 5, 2, 3, nil},
		{"AvailableBelowFreeRooms", 10, 4, 3, nil},
		{"ZeroEverything", 0, 0, 0, nil},
		{"AvailableExceedsTotal", 3, 5, 0, ErrInvalidCapacity},
		{"NegativeTotal", -1, 0, 0, ErrInvalidCapacity},
		{"NegativeAvailable", 5, -1, 0, ErrInvalidCapacity},
		{"ClaimsHeldRooms", 5, 4, 2, ErrInvalidCapacity},
		{"ResetWhileAllHeld", 3, 3, 3, ErrInvalidCapacity},
		{"ShrinkBelowHeld", 2, 0, 3, ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCapacity(tt.total, tt.available, tt.held)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

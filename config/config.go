package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"

	"github.com/joy095/booking/logger"
)

var loadOnce sync.Once

// LoadEnv loads variables from a .env file if one is present. Real
// deployments set everything through the environment, so a missing file
// is not an error.
func LoadEnv() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			if logger.InfoLogger != nil {
				logger.InfoLogger.Info("No .env file found, using environment variables")
			}
		}
	})
}

// GetEnv returns the value of key or fallback when unset.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"time"

	"cinebook/internal/checkout"
	"cinebook/internal/gateway"
	"cinebook/internal/session"

	"github.com/joho/godotenv"
)

// Config holds the client application configuration
type Config struct {
	LogLevel  string
	LogFormat string

	// Price per seat in rupees. The backend does not return per-seat pricing
	// yet, so the client computes totals from this constant.
	SeatPrice int64

	Gateway  gateway.Config
	Checkout checkout.Config
	Session  session.Config
}

// Load reads configuration from the environment, honouring a local .env file
// when present
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		SeatPrice: int64(getEnvInt("SEAT_PRICE", 150)),

		Gateway: gateway.Config{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:3000/api"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT_SEC", 30)) * time.Second,
		},

		Checkout: checkout.Config{
			Addr:        getEnv("CHECKOUT_ADDR", "127.0.0.1:4545"),
			RazorpayKey: getEnv("RAZORPAY_KEY", "rzp_test_h5bgZzCw9TQtTr"),
			Currency:    getEnv("CHECKOUT_CURRENCY", "INR"),
		},

		Session: session.Config{
			StorePath: getEnv("SESSION_STORE_PATH", defaultStorePath()),
		},
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cinebook.db"
	}
	return home + "/.cinebook.db"
}

// getEnv returns an environment variable or the default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or the default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

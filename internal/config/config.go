package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// JWT service tokens issued by the presentation layer
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Worker schedule (24h clock hours, local time)
	RecurringHour   int
	ReminderMorning int
	ReminderEvening int

	// AdminID is the chat user id allowed to call admin endpoints
	AdminID int64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		RecurringHour:   8,
		ReminderMorning: 9,
		ReminderEvening: 19,
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	if adminStr := getEnv("ADMIN_ID", ""); adminStr != "" {
		adminID, err := strconv.ParseInt(adminStr, 10, 64)
		if err != nil {
			log.Printf("Warning: invalid ADMIN_ID value '%s', admin endpoints disabled\n", adminStr)
		} else {
			config.AdminID = adminID
		}
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

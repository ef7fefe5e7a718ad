package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	GoogleClientID     string // Required: OAuth client id for Google sign-in
	GoogleClientSecret string // Required: OAuth client secret

	AdminEmail string // Optional: email granted the admin flag at startup

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./coachd.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	SecureCookies        bool          // Mark session cookies Secure (default: true outside dev)
	SessionTTL           time.Duration // Login session lifetime (default: 720h)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads configuration from the environment, loading a local .env
// file first when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		GoogleClientID:       os.Getenv("COACHD_GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("COACHD_GOOGLE_CLIENT_SECRET"),
		AdminEmail:           os.Getenv("COACHD_ADMIN_EMAIL"),
		DatabaseFile:         getEnvOrDefault("COACHD_DATABASE_FILE", "coachd.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		SessionTTL:           getEnvDurationOrDefault("COACHD_SESSION_TTL", 30*24*time.Hour),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	// Dev runs over plain http where Secure cookies would never be sent.
	cfg.SecureCookies = getEnvBoolOrDefault("COACHD_SECURE_COOKIES", cfg.Env != "dev")

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

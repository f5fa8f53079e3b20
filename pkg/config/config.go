package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	PostgresURL string
	JWTSecret   string

	// Retention job settings
	RetentionCron     string
	RetentionTimezone string
	RetentionDays     int

	// Realtime channel settings
	ChannelCORSOrigin string
	ReconnectAttempts int
	ReconnectDelayMS  int
}

// Load reads configuration from the environment. Required secrets missing at
// startup is an error; everything else falls back to a default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		PostgresURL:       os.Getenv("POSTGRES_CONN_STR"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RetentionCron:     getEnv("NOTIFICATION_RETENTION_CRON", "0 3 * * *"),
		RetentionTimezone: getEnv("NOTIFICATION_RETENTION_TZ", "UTC"),
		RetentionDays:     getEnvInt("NOTIFICATION_RETENTION_DAYS", 30),
		ChannelCORSOrigin: getEnv("CHANNEL_CORS_ORIGIN", "*"),
		ReconnectAttempts: getEnvInt("CHANNEL_RECONNECT_ATTEMPTS", 5),
		ReconnectDelayMS:  getEnvInt("CHANNEL_RECONNECT_DELAY_MS", 3000),
	}

	if cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

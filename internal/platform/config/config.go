package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Kiosk check-in rate limit, e.g. "30-M" for 30 requests per minute.
	CheckInRateLimit string

	// How long the revalidation publisher waits for redis before giving up.
	RevalidateTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CHECKIN_RATE_LIMIT", "30-M")
	viper.SetDefault("REVALIDATE_TIMEOUT", "2s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Revalidation signals will be logged only.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	cfg.CheckInRateLimit = viper.GetString("CHECKIN_RATE_LIMIT")

	revalidateTimeoutStr := viper.GetString("REVALIDATE_TIMEOUT")
	revalidateTimeout, err := time.ParseDuration(revalidateTimeoutStr)
	if err != nil {
		revalidateTimeout = 2 * time.Second
		log.Printf("Warning: Invalid value for REVALIDATE_TIMEOUT ('%s'). Defaulting to %s.\n", revalidateTimeoutStr, revalidateTimeout)
	}
	cfg.RevalidateTimeout = revalidateTimeout

	return cfg, nil
}

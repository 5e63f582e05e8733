package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort            string
	AppMode            string
	CORSAllowedOrigins string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	AuthSecret          string
	SessionTTLDays      int
	SignInPage          string
	NewUserPage         string
	SessionCookieName   string
	SessionCookieSecure bool

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

var ErrMissingSecret = errors.New("AUTH_SECRET must be set")

// MaxSessionTTLDays keeps the TTL well inside time.Duration range.
const MaxSessionTTLDays = 3650

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		AppMode:            getEnv("APP_MODE", "debug"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "credential_auth"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AuthSecret:          getEnv("AUTH_SECRET", ""),
		SessionTTLDays:      getEnvAsInt("AUTH_SESSION_TTL_DAYS", 15),
		SignInPage:          getEnv("AUTH_SIGNIN_PAGE", "/"),
		NewUserPage:         getEnv("AUTH_NEW_USER_PAGE", "/sign-up"),
		SessionCookieName:   getEnv("AUTH_COOKIE_NAME", "session-token"),
		SessionCookieSecure: getEnvAsBool("AUTH_COOKIE_SECURE", false),

		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
	}
}

// Validate reports settings the process cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AuthSecret) == "" {
		return ErrMissingSecret
	}
	if c.SessionTTLDays <= 0 {
		return errors.New("AUTH_SESSION_TTL_DAYS must be positive")
	}
	if c.SessionTTLDays > MaxSessionTTLDays {
		return fmt.Errorf("AUTH_SESSION_TTL_DAYS must be at most %d", MaxSessionTTLDays)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

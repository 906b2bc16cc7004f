package lib

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"

	devJWTSecret = "fallback-secret-key"
)

// Config holds everything the server needs at startup. It is built once and
// passed to each component; nothing reads the environment after LoadConfig.
type Config struct {
	Port          string
	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	SQLitePath    string
	JWTSecret     string
	TokenTTL      time.Duration
	UploadDir     string
	CORSOrigins   string
	LogLevel      string
	LogFormat     string
}

// LoadConfig reads an optional .env file and then the process environment
func LoadConfig() (Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := Config{
		Port:          getEnv("PORT", "5000"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "blog"),
		SQLitePath:    getEnv("DB_PATH", "./blog.db"),
		JWTSecret:     getEnv("JWT_SECRET", devJWTSecret),
		TokenTTL:      ttl,
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMongo, DriverSQLite:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

// UsesDevSecret reports whether the signing secret is the built-in fallback
func (c Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string `env:"APP_MODE" envDefault:"dev"`
	Port      string `env:"PORT" envDefault:"3000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Analytics AnalyticsConfig
	Security  SecurityConfig
}

// DatabaseConfig holds database configuration, read with the DEV_ or PROD_ prefix
type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"mysql"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"3306"`
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASS"`
	DBName   string `env:"DB_NAME" envDefault:"eduhub_records"`
	Path     string `env:"DB_PATH" envDefault:"eduhub.db"` // sqlite only
}

// KafkaConfig holds lifecycle event publishing configuration
type KafkaConfig struct {
	Brokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	EventsTopic string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"eduhub.person-events"`
}

// AnalyticsConfig holds the attendance analytics schedule
type AnalyticsConfig struct {
	Cron       string `env:"ANALYTICS_CRON" envDefault:"0 1 * * *"`
	WindowDays int    `env:"ANALYTICS_WINDOW_DAYS" envDefault:"30"`
	LateAfter  string `env:"ANALYTICS_LATE_AFTER" envDefault:"08:30"`
}

// SecurityConfig holds credential hashing configuration
type SecurityConfig struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	} else if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	config, err := Parse()
	if err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", config.AppMode)
	return config, nil
}

// Parse builds the configuration from the process environment
func Parse() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Trim spaces for Windows compatibility
	config.AppMode = strings.TrimSpace(config.AppMode)
	if config.AppMode != "dev" && config.AppMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", config.AppMode)
	}

	// Database settings depend on APP_MODE
	if err := env.ParseWithOptions(&config.Database, env.Options{Prefix: modePrefix(config.AppMode)}); err != nil {
		return nil, fmt.Errorf("failed to parse database environment: %w", err)
	}
	switch config.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be mysql, postgres or sqlite)", config.Database.Driver)
	}

	return config, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://records.eduhub.local"
	}
	return origins
}

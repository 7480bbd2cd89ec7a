package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion    string
	QueueURL     string
	ExportBucket string
	ExportPrefix string
	EventBusName string

	// Database
	DatabasePath string

	// Export worker tuning
	ExportPageSize           int
	DefaultPollInterval      time.Duration
	AfterMessagePollInterval time.Duration
	ReceiveWaitSeconds       int
	VisibilityTimeoutSeconds int
	MetricsAddress           string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		QueueURL:      getEnv("EXPORT_QUEUE_URL", ""),
		ExportBucket:  getEnv("EXPORT_BUCKET", "listkeeper-exports"),
		ExportPrefix:  getEnv("EXPORT_PREFIX", "exports"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "listkeeper-events"),

		DatabasePath: getEnv("DATABASE_PATH", "listkeeper.db"),

		ExportPageSize:           getEnvInt("EXPORT_PAGE_SIZE", 100),
		DefaultPollInterval:      getEnvDuration("POLL_INTERVAL", 30*time.Second),
		AfterMessagePollInterval: getEnvDuration("AFTER_MESSAGE_POLL_INTERVAL", 1*time.Second),
		ReceiveWaitSeconds:       getEnvInt("RECEIVE_WAIT_SECONDS", 10),
		VisibilityTimeoutSeconds: getEnvInt("VISIBILITY_TIMEOUT_SECONDS", 300),
		MetricsAddress:           getEnv("METRICS_ADDRESS", ":9090"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "listkeeper-backend"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.ExportPageSize <= 0 {
		return fmt.Errorf("EXPORT_PAGE_SIZE must be positive")
	}
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.QueueURL == "" {
			return fmt.Errorf("EXPORT_QUEUE_URL is required in production")
		}
		if c.ExportBucket == "" {
			return fmt.Errorf("EXPORT_BUCKET is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

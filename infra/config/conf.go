package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/goepay/infra/validate"
)

type Config struct {
	Validator *validator.Validate
}

// AppConfig represents the application configuration
type AppConfig struct {
	Environment    string
	OpenSearchURL  string
	OpenSearchUser string
	OpenSearchPass string
	EnableLogging  bool
	LoggingLevel   string
	// HistoryLimit caps the notifications returned per invoice lookup.
	HistoryLimit   int
}

var (
	instance          *Config
	instanceOnce      sync.Once
	appConfigInstance *AppConfig
)

// App returns the shared validator with the epay field tags registered.
func App() *Config {
	instanceOnce.Do(func() {
		v := validator.New()
		validate.CustomValidate(v)
		instance = &Config{Validator: v}
	})
	return instance
}

// GetAppConfig returns the application configuration
func GetAppConfig() *AppConfig {
	if appConfigInstance == nil {
		appConfigInstance = &AppConfig{
			Environment:    GetEnv("ENVIRONMENT", "development"),
			OpenSearchURL:  GetEnv("OPENSEARCH_URL", "http://localhost:9200"),
			OpenSearchUser: GetEnv("OPENSEARCH_USER", ""),
			OpenSearchPass: GetEnv("OPENSEARCH_PASSWORD", ""),
			EnableLogging:  GetBoolEnv("ENABLE_OPENSEARCH_LOGGING", false),
			LoggingLevel:   GetEnv("LOGGING_LEVEL", "info"),
			HistoryLimit:   GetIntEnv("NOTIFICATION_HISTORY_LIMIT", 100),
		}
	}
	return appConfigInstance
}

// ResetAppConfig drops the cached AppConfig so the next GetAppConfig reads the environment again.
func ResetAppConfig() {
	appConfigInstance = nil
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolEnv returns the boolean value of an environment variable or a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetIntEnv returns the integer value of an environment variable or a default value
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

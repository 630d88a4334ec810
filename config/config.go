package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	AppDBPath string `json:"app_db_path"`

	// API Server
	APIPort string `json:"api_port"`
	APIHost string `json:"api_host"`

	// Logging
	LogLevel string `json:"log_level"`

	// Worker Pool
	WorkerPoolSize int `json:"worker_pool_size"`

	// Cache
	CacheTTLHours int `json:"cache_ttl_hours"`

	// Chart rendering on dashboard pages
	Display DisplayConfig `mapstructure:"display" json:"display"`

	// Scheduler
	Scheduler SchedulerConfig `mapstructure:"scheduler" json:"scheduler"`

	// Retention
	Retention RetentionConfig `mapstructure:"retention" json:"retention"`

	// Locale -> direction table
	Locales *LocaleConfigManager `json:"-"`
}

// DisplayConfig controls how chart containers are found and drawn
type DisplayConfig struct {
	RTL           bool   `mapstructure:"rtl" json:"rtl"`
	MarkerClass   string `mapstructure:"marker_class" json:"marker_class"`
	DataAttribute string `mapstructure:"data_attribute" json:"data_attribute"`
}

// Default returns a configuration with built-in defaults and no file backing
func Default() *Config {
	return &Config{
		AppDBPath:      "./data/app.db",
		APIPort:        "8080",
		APIHost:        "0.0.0.0",
		LogLevel:       "info",
		WorkerPoolSize: 4,
		CacheTTLHours:  24,
		Display: DisplayConfig{
			MarkerClass:   "chart",
			DataAttribute: "data-chart",
		},
		Scheduler: SchedulerConfig{Enabled: true, IntervalMinutes: 60},
		Retention: RetentionConfig{JobDays: 7, LogDays: 30},
		Locales:   NewLocaleConfigManager(""),
	}
}

// LoadConfig loads configuration from .env and config.yaml
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		// .env file is optional, only warn
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load YAML configuration
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	return fromViper(viper.GetViper())
}

// fromViper builds the config from an already-read viper instance
func fromViper(v *viper.Viper) (*Config, error) {
	defaults := Default()

	config := &Config{
		// Load from environment variables
		AppDBPath:      getEnv("APP_DB_PATH", defaults.AppDBPath),
		APIPort:        getEnv("API_PORT", defaults.APIPort),
		APIHost:        getEnv("API_HOST", defaults.APIHost),
		LogLevel:       getEnv("LOG_LEVEL", defaults.LogLevel),
		WorkerPoolSize: getEnvAsInt("WORKER_POOL_SIZE", defaults.WorkerPoolSize),
		CacheTTLHours:  getEnvAsInt("CACHE_TTL_HOURS", defaults.CacheTTLHours),
		Display:        defaults.Display,
		Scheduler:      defaults.Scheduler,
		Retention:      defaults.Retention,
	}

	// Load from YAML
	if err := v.UnmarshalKey("display", &config.Display); err != nil {
		return nil, fmt.Errorf("failed to unmarshal display config: %w", err)
	}
	if err := v.UnmarshalKey("scheduler", &config.Scheduler); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scheduler config: %w", err)
	}
	if err := v.UnmarshalKey("retention", &config.Retention); err != nil {
		return nil, fmt.Errorf("failed to unmarshal retention config: %w", err)
	}

	if config.Display.MarkerClass == "" {
		config.Display.MarkerClass = defaults.Display.MarkerClass
	}
	if config.Display.DataAttribute == "" {
		config.Display.DataAttribute = defaults.Display.DataAttribute
	}

	// Locale table lives next to config.yaml
	config.Locales = NewLocaleConfigManager(v.GetString("locales_file"))
	if err := config.Locales.Load(); err != nil {
		log.Printf("Warning: Failed to load locale config: %v", err)
	}

	// Validate required fields
	if config.AppDBPath == "" {
		return nil, fmt.Errorf("APP_DB_PATH is required")
	}
	if config.WorkerPoolSize <= 0 {
		return nil, fmt.Errorf("WORKER_POOL_SIZE must be positive, got %d", config.WorkerPoolSize)
	}

	return config, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

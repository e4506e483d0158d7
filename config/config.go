package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"partybets/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Party configuration
	HostPIN string // Shared secret that proves the caller is the host

	// HTTP configuration
	HTTPAddr string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables NATS

	// Redis configuration
	RedisAddr       string // Empty disables the summary cache
	SummaryCacheTTL time.Duration

	// Discord configuration
	DiscordToken     string
	DiscordChannelID string // Channel settled bets are announced in

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// NATSEnabled reports whether events should be published to NATS
func (c *Config) NATSEnabled() bool {
	return strings.TrimSpace(c.NATSServers) != ""
}

// CacheEnabled reports whether party summaries should be cached in Redis
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

// DiscordEnabled reports whether settled bets should be announced on Discord
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// ApplyLogging configures logrus from the log level and environment
func (c *Config) ApplyLogging() {
	if c.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("log_level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// load loads configuration from a .env file and environment variables
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Party
		HostPIN: os.Getenv("HOST_PIN"),

		// HTTP
		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":8080"),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Redis
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		SummaryCacheTTL: 30 * time.Second,

		// Discord
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),

		// Logging
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if ttl := os.Getenv("SUMMARY_CACHE_TTL_SECONDS"); ttl != "" {
		if seconds, err := strconv.Atoi(ttl); err == nil && seconds > 0 {
			config.SummaryCacheTTL = time.Duration(seconds) * time.Second
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if strings.TrimSpace(config.HostPIN) == "" {
			return nil, fmt.Errorf("HOST_PIN is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		HostPIN:         "4321",
		HTTPAddr:        ":0",
		SummaryCacheTTL: 30 * time.Second,
		LogLevel:        "debug",
	}
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultSettingsPath is where the settings file lives unless overridden.
	DefaultSettingsPath = "checkout-settings.json"

	// OutcomeWindowSize is the number of recent checkouts in the outcome window.
	OutcomeWindowSize = 50

	// OutcomeWindowDurationMinutes is the time bound of the outcome window.
	OutcomeWindowDurationMinutes = 10
)

// Gateway profile names.
const (
	ProfileSandbox = "sandbox"
	ProfileFlaky   = "flaky"
)

// Config holds process configuration.
type Config struct {
	Server         ServerConfig
	SettingsPath   string
	GatewayProfile string

	// GatewayMinLatency/GatewayMaxLatency override the profile's simulated
	// latency bounds when GatewayMaxLatency is positive.
	GatewayMinLatency time.Duration
	GatewayMaxLatency time.Duration

	LogLevel slog.Level
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from the environment, honoring a .env file when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", DefaultServerPort),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		SettingsPath:      getEnv("SETTINGS_PATH", DefaultSettingsPath),
		GatewayProfile:    strings.ToLower(getEnv("GATEWAY_PROFILE", ProfileSandbox)),
		GatewayMinLatency: getEnvAsDuration("GATEWAY_MIN_LATENCY", 0),
		GatewayMaxLatency: getEnvAsDuration("GATEWAY_MAX_LATENCY", 0),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	if c.GatewayProfile != ProfileSandbox && c.GatewayProfile != ProfileFlaky {
		return fmt.Errorf("GATEWAY_PROFILE must be %q or %q", ProfileSandbox, ProfileFlaky)
	}
	if c.GatewayMaxLatency > 0 && c.GatewayMinLatency > c.GatewayMaxLatency {
		return fmt.Errorf("GATEWAY_MIN_LATENCY exceeds GATEWAY_MAX_LATENCY")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

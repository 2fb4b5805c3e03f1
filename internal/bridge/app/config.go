package app

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	APISecret         string // Required: shared secret for signing access-control request URLs
	SiteID            string // Required: the site this bridge serves
	IdentityHost      string // Required: identity API base URL
	EntitlementHost   string // Required: entitlements/plans API base URL
	AccessControlHost string // Required: access-control API base URL

	BindAddr            string        // Network address to listen on (default: 0.0.0.0)
	Port                int           // HTTP server port (default: 8080)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. The secret, site and
// upstream hosts have no sensible defaults; missing any of them is a fatal
// startup error, never a runtime one.
func LoadConfig() (Config, error) {
	cfg := Config{
		BindAddr:            getEnvOrDefault("APP_BIND_ADDR", "0.0.0.0"),
		Port:                getEnvIntOrDefault("APP_BIND_PORT", 8080),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	var err error
	if cfg.APISecret, err = requireEnv("APP_API_SECRET"); err != nil {
		return Config{}, err
	}
	if cfg.SiteID, err = requireEnv("APP_SITE_ID"); err != nil {
		return Config{}, err
	}
	if cfg.IdentityHost, err = requireEnv("APP_IDENTITY_API_HOST"); err != nil {
		return Config{}, err
	}
	if cfg.EntitlementHost, err = requireEnv("APP_ENTITLEMENT_API_HOST"); err != nil {
		return Config{}, err
	}
	if cfg.AccessControlHost, err = requireEnv("APP_ACCESS_CONTROL_API_HOST"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("environment variable %q is not defined", key)
	}
	return value, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}

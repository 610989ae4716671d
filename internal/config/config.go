package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the client core.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	Store       StoreConfig
	Notify      NotifyConfig
	Watcher     WatcherConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

// APIConfig describes the remote storefront API.
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// StoreConfig locates the local BoltDB file mirroring session and cart state.
type StoreConfig struct {
	Path          string
	SessionBucket string
	CartBucket    string
}

// NotifyConfig controls the notification poll loop.
type NotifyConfig struct {
	PollInterval time.Duration
}

// WatcherConfig controls the token-expiry watcher.
type WatcherConfig struct {
	Enabled  bool
	Interval time.Duration
}

type ContextConfig struct {
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the client can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "storefront-client"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:        getString("API_BASE_URL", "http://localhost:8000/api"),
			RequestTimeout: getDuration("API_REQUEST_TIMEOUT", 5*time.Second),
		},
		Store: StoreConfig{
			Path:          getString("BOLTDB_PATH", "./data/storefront.db"),
			SessionBucket: getString("SESSION_BUCKET", "session"),
			CartBucket:    getString("CART_BUCKET", "cart"),
		},
		Notify: NotifyConfig{
			PollInterval: getDuration("NOTIFY_POLL_INTERVAL", 30*time.Second),
		},
		Watcher: WatcherConfig{
			Enabled:  getBool("EXPIRY_WATCH_ENABLED", true),
			Interval: getDuration("EXPIRY_WATCH_INTERVAL", 30*time.Second),
		},
		Context: ContextConfig{
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

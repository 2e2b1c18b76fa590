package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	App     AppConfig
	Kiosk   KioskConfig
	Session SessionConfig
}

// APIConfig holds settings for the backend HTTP API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Env         string
	LogLevel    string
	DownloadDir string
}

// KioskConfig holds timing for the kiosk and admin surfaces.
type KioskConfig struct {
	FeedbackWindow time.Duration
	FadeWindow     time.Duration
	ClockTick      time.Duration
	StatusInterval time.Duration
}

// SessionConfig holds settings for the scoped token store.
type SessionConfig struct {
	StoragePath string
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	config := &Config{}

	timeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}
	config.API = APIConfig{
		BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		Timeout: timeout,
	}

	config.App = AppConfig{
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DownloadDir: getEnv("DOWNLOAD_DIR", "."),
	}

	feedbackWindow, err := time.ParseDuration(getEnv("KIOSK_FEEDBACK_WINDOW", "4s"))
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_FEEDBACK_WINDOW: %w", err)
	}
	fadeWindow, err := time.ParseDuration(getEnv("KIOSK_FADE_WINDOW", "300ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_FADE_WINDOW: %w", err)
	}
	statusInterval, err := time.ParseDuration(getEnv("STATUS_POLL_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_POLL_INTERVAL: %w", err)
	}
	config.Kiosk = KioskConfig{
		FeedbackWindow: feedbackWindow,
		FadeWindow:     fadeWindow,
		ClockTick:      time.Second,
		StatusInterval: statusInterval,
	}

	config.Session = SessionConfig{
		StoragePath: getEnv("SESSION_STORAGE_PATH", defaultSessionPath()),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must start with http:// or https://")
	}
	if c.Kiosk.FeedbackWindow <= 0 {
		return fmt.Errorf("KIOSK_FEEDBACK_WINDOW must be positive")
	}
	if c.Kiosk.StatusInterval <= 0 {
		return fmt.Errorf("STATUS_POLL_INTERVAL must be positive")
	}
	return nil
}

// defaultSessionPath scopes the stored token to the current login session,
// mirroring tab-lifetime sessionStorage: a fresh shell gets a fresh scope.
func defaultSessionPath() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = os.TempDir()
	}
	return filepath.Join(runtimeDir, "timeclock-session.json")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is folded in first; a missing file is fine.
//
// Recognized variables:
//
//	CONTESTDESK_API_URL      base URL of the backend
//	CONTESTDESK_API_TIMEOUT  request timeout in seconds
//	CONTESTDESK_REFRESH      real-time poll interval in seconds
//	CONTESTDESK_PREFS_PATH   preference database path
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("CONTESTDESK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("CONTESTDESK_API_TIMEOUT"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.APITimeout = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("CONTESTDESK_REFRESH"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.RefreshInterval = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("CONTESTDESK_PREFS_PATH"); v != "" {
		cfg.PrefsPath = v
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "contestdesk.db", cfg.PrefsPath)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("CONTESTDESK_API_URL", "http://stage:9000")
	t.Setenv("CONTESTDESK_API_TIMEOUT", "20")
	t.Setenv("CONTESTDESK_REFRESH", "15")
	t.Setenv("CONTESTDESK_PREFS_PATH", "/tmp/cd.db")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "http://stage:9000", cfg.APIBaseURL)
	assert.Equal(t, 20*time.Second, cfg.APITimeout)
	assert.Equal(t, 15*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "/tmp/cd.db", cfg.PrefsPath)
}

func TestParseEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("CONTESTDESK_API_TIMEOUT", "not-a-number")
	t.Setenv("CONTESTDESK_REFRESH", "-5")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

func TestParseJsonOverlay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	payload := map[string]any{
		"api_base_url":     "http://json-host",
		"api_timeout":      "25s",
		"refresh_interval": "45s",
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, data, 0o600))

	oldArgs := os.Args
	os.Args = []string{"contestdesk", "-c", file}
	defer func() { os.Args = oldArgs }()

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "http://json-host", cfg.APIBaseURL)
	assert.Equal(t, 25*time.Second, cfg.APITimeout)
	assert.Equal(t, 45*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "contestdesk.db", cfg.PrefsPath)
}

func TestParseJsonNoFlagNoOverlay(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"contestdesk"}
	defer func() { os.Args = oldArgs }()

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
}

func TestParseFlagsOverrides(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"contestdesk", "-a", "http://flag-host", "-t", "7", "-p", "flag.db"}
	defer func() { os.Args = oldArgs }()

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, "http://flag-host", cfg.APIBaseURL)
	assert.Equal(t, 7*time.Second, cfg.APITimeout)
	assert.Equal(t, "flag.db", cfg.PrefsPath)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

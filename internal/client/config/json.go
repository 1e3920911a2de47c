package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/unioncup/contestdesk/internal/flagx"
	"github.com/unioncup/contestdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be strings like "30s" or integer nanoseconds (timex.Duration).
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	APITimeout      timex.Duration `json:"api_timeout"`
	RefreshInterval timex.Duration `json:"refresh_interval"`
	PrefsPath       string         `json:"prefs_path"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flag. No flag, no file, no overlay. Read or parse failures
// panic; the config phase has no useful recovery.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.APITimeout.Duration > 0 {
		cfg.APITimeout = time.Duration(jc.APITimeout.Duration)
	}
	if jc.RefreshInterval.Duration > 0 {
		cfg.RefreshInterval = time.Duration(jc.RefreshInterval.Duration)
	}
	if jc.PrefsPath != "" {
		cfg.PrefsPath = jc.PrefsPath
	}
}

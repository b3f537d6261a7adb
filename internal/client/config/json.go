package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/dmitrijs2005/gophnotes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value; durations use timex.Duration
// so they may be strings like "2s" or integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  *string         `json:"server_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	UseMock        *bool           `json:"use_mock"`
	MockLatency    *bool           `json:"mock_latency"`
	DBPath         *string         `json:"db_path"`
	AutoSaveDelay  *timex.Duration `json:"autosave_delay"`
	RecentWindow   *timex.Duration `json:"recent_window"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
	HTTPDebug      *bool           `json:"http_debug"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without either flag nothing is loaded. Keys missing from the file keep
// their current value.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	set(&cfg.ServerBaseURL, jc.ServerBaseURL)
	set(&cfg.UseMock, jc.UseMock)
	set(&cfg.MockLatency, jc.MockLatency)
	set(&cfg.DBPath, jc.DBPath)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
	set(&cfg.HTTPDebug, jc.HTTPDebug)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.AutoSaveDelay != nil {
		cfg.AutoSaveDelay = jc.AutoSaveDelay.Duration
	}
	if jc.RecentWindow != nil {
		cfg.RecentWindow = jc.RecentWindow.Duration
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

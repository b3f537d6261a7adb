package config

import (
	"os"
	"time"
)

// Config holds runtime settings of the gophnotes client.
//
// Units: RequestTimeout, AutoSaveDelay and RecentWindow are time.Duration
// values (e.g. 2*time.Second).
type Config struct {
	ServerBaseURL  string        `envconfig:"SERVER_BASE_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	UseMock        bool          `envconfig:"USE_MOCK"`
	MockLatency    bool          `envconfig:"MOCK_LATENCY"`
	DBPath         string        `envconfig:"DB_PATH"`
	AutoSaveDelay  time.Duration `envconfig:"AUTOSAVE_DELAY"`
	RecentWindow   time.Duration `envconfig:"RECENT_WINDOW"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	LogFormat      string        `envconfig:"LOG_FORMAT"`
	HTTPDebug      bool          `envconfig:"HTTP_DEBUG"`
}

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "GOPHNOTES"

// DotEnvFile is loaded into the environment when present.
const DotEnvFile = ".env"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.UseMock = false
	c.MockLatency = true
	c.DBPath = "gophnotes.db"
	c.AutoSaveDelay = 2 * time.Second
	c.RecentWindow = 3 * 24 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.HTTPDebug = false
}

// LoadConfig constructs a Config from defaults, the .env file, the JSON file,
// the environment and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

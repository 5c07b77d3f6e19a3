package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the assistant
type Config struct {
	Relay struct {
		URL     string        `mapstructure:"url"`
		Model   string        `mapstructure:"model"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"relay"`

	Catalog struct {
		Source   string `mapstructure:"source"`
		Snapshot bool   `mapstructure:"snapshot"`
	} `mapstructure:"catalog"`

	State struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	} `mapstructure:"state"`

	DataDir    string `mapstructure:"-"`
	ConfigFile string `mapstructure:"-"`
}

// ConfigOptions tells LoadConfig where to look
type ConfigOptions struct {
	DataDir    string // defaults to DefaultDataDir()
	ConfigFile string // explicit config file, overrides <DataDir>/config.yaml
	EnvFile    string // dotenv file, defaults to ".env"
}

// DefaultModel is used for routine requests when none is configured
const DefaultModel = "gpt-4o"

// LoadConfig reads defaults, the optional config file, the .env file and
// ROUTINE_* environment variables, in increasing priority
func LoadConfig(opts ConfigOptions) (*Config, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	paths := DataPathsAt(dataDir)

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		LogWarn("Failed to load %s: %v", envFile, err)
	}

	v := viper.New()
	v.SetDefault("relay.url", "")
	v.SetDefault("relay.model", DefaultModel)
	v.SetDefault("relay.timeout", "60s")
	v.SetDefault("catalog.source", "products.json")
	v.SetDefault("catalog.snapshot", true)
	v.SetDefault("state.driver", DriverSQLite)
	v.SetDefault("state.path", paths.StatePath)

	v.SetEnvPrefix("ROUTINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := opts.ConfigFile
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		LogDebug("No config file in %s, using defaults", dataDir)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.DataDir = dataDir
	cfg.ConfigFile = v.ConfigFileUsed()

	if cfg.Relay.Model == "" {
		cfg.Relay.Model = DefaultModel
	}
	if cfg.Relay.Timeout <= 0 {
		cfg.Relay.Timeout = 60 * time.Second
	}
	return &cfg, nil
}

// CacheDir returns the catalogue snapshot directory
func (c *Config) CacheDir() string {
	return DataPathsAt(c.DataDir).CacheDir
}

// RelayConfigured reports whether a relay endpoint is set
func (c *Config) RelayConfigured() bool {
	return strings.TrimSpace(c.Relay.URL) != ""
}

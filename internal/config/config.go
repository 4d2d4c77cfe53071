// Package config loads client configuration from an optional YAML file and
// OVERFLOW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved client configuration.
type Config struct {
	// APIBase is the backend base URL.
	APIBase string `mapstructure:"api_base"`
	// Timeout bounds each request.
	Timeout time.Duration `mapstructure:"timeout"`
	// LogFile is the rotated client log destination.
	LogFile string `mapstructure:"log_file"`
	// SessionFile is the persisted session store path.
	SessionFile string `mapstructure:"session_file"`
	// Debug lowers the log level.
	Debug bool `mapstructure:"debug"`
}

// Load reads config.yaml from dir when present; environment variables
// (OVERFLOW_API_BASE, OVERFLOW_TIMEOUT, ...) override the file.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetDefault("api_base", "http://localhost:8000")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log_file", filepath.Join(dir, "client.log"))
	v.SetDefault("session_file", filepath.Join(dir, "session.json"))
	v.SetDefault("debug", false)

	v.SetEnvPrefix("OVERFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.APIBase == "" {
		return Config{}, errors.New("api_base must not be empty")
	}
	return cfg, nil
}

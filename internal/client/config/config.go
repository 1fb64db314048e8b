package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dmitrijs2005/bidscurator/internal/common"
)

// Config holds runtime settings for the bidscurator CLI.
type Config struct {
	// APIKey is sent on every request. A key of the form "host:secret"
	// also supplies Host when Host is empty, so it is validated first.
	APIKey string `mapstructure:"api_key" validate:"required"`
	// Host is the platform host name, optionally with scheme and port.
	Host           string        `mapstructure:"host" validate:"required"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	Logging        LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RequestTimeout = 30 * time.Second
	c.Logging.Level = "INFO"
	c.Logging.Format = "text"
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"host":            "host",
	"api_key":         "api-key",
	"request_timeout": "timeout",
	"logging.format":  "log-format",
}

// Load builds a Config from defaults, then the config file, then
// BIDSCURATOR_* environment variables, then flags that were set on fs.
// An empty path selects $XDG_CONFIG_HOME/bidscurator/config.yaml; a missing
// default file is not an error. fs may be nil.
//
// Load does not validate: the API key may still be prompted for.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	var cfg Config
	cfg.LoadDefaults()

	v := viper.New()
	v.SetDefault("host", cfg.Host)
	v.SetDefault("api_key", cfg.APIKey)
	v.SetDefault("request_timeout", cfg.RequestTimeout)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetEnvPrefix(strings.ToUpper(common.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Resolve()
	return &cfg, nil
}

// Resolve fills Host from a "host:secret" API key when Host is empty. The
// split is on the last colon so host:port keys work.
func (c *Config) Resolve() {
	if c.Host != "" || c.APIKey == "" {
		return
	}
	if i := strings.LastIndex(c.APIKey, ":"); i > 0 {
		c.Host = c.APIKey[:i]
	}
}

// Dir returns the directory searched for config.yaml.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, common.AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", common.AppName)
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/scrollplot/pkg/cache"
	"github.com/matzehuels/scrollplot/pkg/pipeline"
	"github.com/matzehuels/scrollplot/pkg/server"
)

// Config holds tool settings. Story constants live in the story file.
type Config struct {
	CacheDir     string  `mapstructure:"cache-dir"`
	CacheBackend string  `mapstructure:"cache-backend"`
	RedisAddr    string  `mapstructure:"redis-addr"`
	Width        float64 `mapstructure:"width"`
	Listen       string  `mapstructure:"listen"`
	GlamourStyle string  `mapstructure:"glamour-style"`
	ConfigPath   string  `mapstructure:"-"`
}

// loadConfig reads configPath, or ~/.config/scrollplot/config.yml when empty.
// Only the default file may be missing.
func loadConfig(configPath string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix("SCROLLPLOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("cache-dir", "")
	v.SetDefault("cache-backend", string(cache.BackendFile))
	v.SetDefault("redis-addr", "localhost:6379")
	v.SetDefault("width", pipeline.DefaultSize)
	v.SetDefault("listen", server.DefaultAddr)
	v.SetDefault("glamour-style", "auto")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", appName, "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || os.IsNotExist(err)
		if !missing || configPath != "" {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	switch cache.Backend(cfg.CacheBackend) {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return cfg, fmt.Errorf("invalid cache-backend %q (want file, redis or none)", cfg.CacheBackend)
	}
	if cfg.Width < pipeline.MinSize {
		return cfg, fmt.Errorf("invalid width %.0f (minimum %.0f)", cfg.Width, pipeline.MinSize)
	}
	if strings.HasPrefix(cfg.CacheDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.CacheDir = filepath.Join(home, cfg.CacheDir[2:])
		}
	}
	return cfg, nil
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/render"
)

// Config is the optional config.toml:
//
//	workers = 8
//	log_level = "info"
//
//	[render]
//	format = "svg"
//
//	[serve]
//	addr = ":8080"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	// Workers is the spider parallelism per generation; 0 selects GOMAXPROCS.
	Workers  int          `toml:"workers"`
	LogLevel string       `toml:"log_level"`
	Render   RenderConfig `toml:"render"`
	Serve    ServeConfig  `toml:"serve"`
}

// RenderConfig holds dump defaults.
type RenderConfig struct {
	Format string `toml:"format"`
}

// ServeConfig holds HTTP server defaults.
type ServeConfig struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Render:   RenderConfig{Format: string(render.FormatText)},
		Serve:    ServeConfig{Addr: ":8080"},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error
// unless required is set.
func loadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, swerr.Wrap(swerr.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, swerr.Wrap(swerr.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, swerr.New(swerr.ErrCodeInvalidFormat, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.Workers < 0 {
		return swerr.New(swerr.ErrCodeInvalidInput, "workers must not be negative")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return swerr.Wrap(swerr.ErrCodeInvalidInput, err, "log_level")
	}
	if _, err := render.ParseFormat(cfg.Render.Format); err != nil {
		return err
	}
	if cfg.Serve.RedisURL != "" {
		if err := swerr.ValidateURL(cfg.Serve.RedisURL); err != nil {
			return err
		}
	}
	return nil
}

// level returns the configured log level.
func (cfg Config) level() log.Level {
	l, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Package config loads dayplan settings from defaults, a YAML file and
// DAYPLAN_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/rcliao/dayplan/internal/temporal"
)

const (
	envPrefix         = "DAYPLAN_"
	maxConfigFileSize = 1024 * 1024
)

// Config is the full application configuration.
type Config struct {
	DBPath   string         `koanf:"db_path"`
	Log      LogConfig      `koanf:"log"`
	Server   ServerConfig   `koanf:"server"`
	Temporal TemporalConfig `koanf:"temporal"`
	Watch    WatchConfig    `koanf:"watch"`
}

// LogConfig selects zap level and encoding.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ServerConfig is the HTTP listener.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// TemporalConfig holds the start-up values for temporal.Config.
type TemporalConfig struct {
	ReflectionStartHour int `koanf:"reflection_start_hour"`
	ReflectionEndHour   int `koanf:"reflection_end_hour"`
	NightStartHour      int `koanf:"night_start_hour"`
	NightEndHour        int `koanf:"night_end_hour"`
	DayOffset           int `koanf:"day_offset"`
	WindowDays          int `koanf:"window_days"`
}

// WatchConfig controls the periodic re-evaluation loop.
type WatchConfig struct {
	Interval time.Duration `koanf:"interval"`
}

// Core converts the temporal section into the core's config value.
func (t TemporalConfig) Core() temporal.Config {
	return temporal.Config{
		ReflectionStartHour: t.ReflectionStartHour,
		ReflectionEndHour:   t.ReflectionEndHour,
		NightStartHour:      t.NightStartHour,
		NightEndHour:        t.NightEndHour,
		DayOffset:           t.DayOffset,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	core := temporal.DefaultConfig()
	return &Config{
		DBPath: filepath.Join(home, ".dayplan", "dayplan.db"),
		Log:    LogConfig{Level: "info", Format: "json"},
		Server: ServerConfig{Addr: "127.0.0.1:7420"},
		Temporal: TemporalConfig{
			ReflectionStartHour: core.ReflectionStartHour,
			ReflectionEndHour:   core.ReflectionEndHour,
			NightStartHour:      core.NightStartHour,
			NightEndHour:        core.NightEndHour,
			DayOffset:           core.DayOffset,
			WindowDays:          temporal.DefaultWindowDays,
		},
		Watch: WatchConfig{Interval: time.Minute},
	}
}

// DefaultPath is ~/.dayplan/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dayplan", "config.yaml")
}

// Load reads configuration. An empty path means DefaultPath; a missing file
// is not an error. A .env file in the working directory is loaded into the
// process environment first, without overriding variables already set.
func Load(path string) (*Config, *koanf.Koanf, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	def := Default()
	if err := k.Load(rawbytes.Provider(defaultsYAML(def)), yaml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = DefaultPath()
	}
	content, err := readConfigFile(path)
	if err != nil {
		return nil, nil, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, k, nil
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return content, nil
}

// envKey maps DAYPLAN_TEMPORAL_NIGHT_START_HOUR to temporal.night_start_hour.
// The first segment after the prefix is the section; DAYPLAN_DB_PATH has no
// section and maps to db_path.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) == 1 {
		return key
	}
	switch parts[0] {
	case "log", "server", "temporal", "watch":
		return parts[0] + "." + parts[1]
	}
	return key
}

func defaultsYAML(c *Config) []byte {
	return []byte(fmt.Sprintf(`db_path: %q
log:
  level: %q
  format: %q
server:
  addr: %q
temporal:
  reflection_start_hour: %d
  reflection_end_hour: %d
  night_start_hour: %d
  night_end_hour: %d
  day_offset: %d
  window_days: %d
watch:
  interval: %q
`, c.DBPath, c.Log.Level, c.Log.Format, c.Server.Addr,
		c.Temporal.ReflectionStartHour, c.Temporal.ReflectionEndHour,
		c.Temporal.NightStartHour, c.Temporal.NightEndHour,
		c.Temporal.DayOffset, c.Temporal.WindowDays, c.Watch.Interval.String()))
}

// Render marshals the loaded settings back to YAML.
func Render(k *koanf.Koanf) ([]byte, error) {
	return k.Marshal(yaml.Parser())
}

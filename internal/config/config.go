package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/vitalog-dev/vitalog/internal/core"
)

type UIConfig struct {
	RefreshIntervalSeconds int    `json:"refresh_interval_seconds"`
	DefaultRange           string `json:"default_range"`
}

type SyncConfig struct {
	BackendURL string `json:"backend_url"`
}

type Config struct {
	Theme    string     `json:"theme"`
	Units    string     `json:"units"`
	Timezone string     `json:"timezone"`
	UI       UIConfig   `json:"ui"`
	Sync     SyncConfig `json:"sync"`
}

func DefaultConfig() Config {
	return Config{
		Theme: "Catppuccin Mocha",
		Units: "imperial",
		UI: UIConfig{
			RefreshIntervalSeconds: 30,
			DefaultRange:           string(core.TimeRange1m),
		},
	}
}

// Location resolves the configured timezone. An empty or unparseable
// value falls back to the host's local zone.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "vitalog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vitalog")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

// DBPath is where the local entry database lives.
func DBPath() string {
	return filepath.Join(ConfigDir(), "vitalog.db")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.UI.RefreshIntervalSeconds <= 0 {
		cfg.UI.RefreshIntervalSeconds = 30
	}
	if _, ok := core.ParseTimeRange(cfg.UI.DefaultRange); !ok {
		cfg.UI.DefaultRange = string(core.TimeRange1m)
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultConfig().Theme
	}
	if cfg.Units != "metric" && cfg.Units != "imperial" {
		cfg.Units = "imperial"
	}

	return cfg, nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveTheme persists a theme name into the config file (read-modify-write).
func SaveTheme(theme string) error {
	return SaveThemeTo(ConfigPath(), theme)
}

func SaveThemeTo(path string, theme string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Theme = theme
	return SaveTo(path, cfg)
}

// SaveDefaultRange persists the dashboard's last selected time range so
// the next launch opens on it.
func SaveDefaultRange(rangeKey string) error {
	return SaveDefaultRangeTo(ConfigPath(), rangeKey)
}

func SaveDefaultRangeTo(path, rangeKey string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.UI.DefaultRange = rangeKey
	return SaveTo(path, cfg)
}

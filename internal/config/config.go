package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultServeAddr is where `streakmap serve` listens when nothing is configured.
const DefaultServeAddr = "127.0.0.1:8337"

// Config holds the top-level streakmap configuration.
type Config struct {
	Day        DayConfig        `toml:"day"`
	Collection CollectionConfig `toml:"collection"`
	Heatmap    HeatmapConfig    `toml:"heatmap"`
	Serve      ServeConfig      `toml:"serve"`
}

// DayConfig controls where activity days begin.
type DayConfig struct {
	// Rollover is the hour past local midnight a new day starts at.
	// Nil defers to the collection's own setting, then to 4.
	Rollover *int   `toml:"rollover"`
	Timezone string `toml:"timezone"`
}

// Location resolves the configured timezone. Empty and "Local" mean the
// process's local zone.
func (d DayConfig) Location() (*time.Location, error) {
	switch d.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", d.Timezone, err)
	}
	return loc, nil
}

type CollectionConfig struct {
	Path string `toml:"path"`
}

type HeatmapConfig struct {
	Count string `toml:"count"` // first, all
	Fill  bool   `toml:"fill"`
}

type ServeConfig struct {
	Addr         string   `toml:"addr"`
	AllowOrigins []string `toml:"allow_origins"`
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	appConfig := filepath.Join(configDir, "streakmap")
	appData := filepath.Join(dataDir, "streakmap")

	return Paths{
		ConfigDir:  appConfig,
		DataDir:    appData,
		CacheDir:   filepath.Join(cacheDir, "streakmap"),
		StateDir:   filepath.Join(stateDir, "streakmap"),
		ConfigFile: filepath.Join(appConfig, "config.toml"),
		DBFile:     filepath.Join(appData, "events.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
// STREAKMAP_COLLECTION overrides collection.path.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", paths.ConfigFile, err)
		}
	}

	if p := os.Getenv("STREAKMAP_COLLECTION"); p != "" {
		cfg.Collection.Path = p
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if a config file has been written.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// IntPtr returns a pointer to an int value.
func IntPtr(v int) *int {
	return &v
}

func defaultConfig() *Config {
	return &Config{
		Day: DayConfig{
			Timezone: "Local",
		},
		Heatmap: HeatmapConfig{
			Count: "first",
		},
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
			AllowOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type (string, int, bool).
	Type KeyType
	// Desc is a human-readable description shown in `streakmap config list`.
	Desc string
	// DefaultStr is the string representation of the default/zero value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"day.rollover": {
		Type:       KeyTypeInt,
		Desc:       "Hour past local midnight a new day starts at (0-23; unset uses the collection's)",
		DefaultStr: "",
		get: func(cfg *Config) string {
			if cfg.Day.Rollover == nil {
				return ""
			}
			return strconv.Itoa(*cfg.Day.Rollover)
		},
		set: func(cfg *Config, v string) error {
			h, err := ParseHour(v)
			if err != nil {
				return err
			}
			cfg.Day.Rollover = IntPtr(h)
			return nil
		},
		unset: func(cfg *Config) { cfg.Day.Rollover = nil },
	},
	"day.timezone": {
		Type:       KeyTypeString,
		Desc:       "IANA timezone that defines calendar days (Local for the system zone)",
		DefaultStr: "Local",
		get:        func(cfg *Config) string { return cfg.Day.Timezone },
		set: func(cfg *Config, v string) error {
			if v != "Local" {
				if _, err := time.LoadLocation(v); err != nil {
					return fmt.Errorf("unknown timezone %q", v)
				}
			}
			cfg.Day.Timezone = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Day.Timezone = "Local" },
	},
	"collection.path": {
		Type:       KeyTypeString,
		Desc:       "Path to an Anki collection.anki2 (empty uses the streakmap event log)",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.Collection.Path },
		set:        func(cfg *Config, v string) error { cfg.Collection.Path = v; return nil },
		unset:      func(cfg *Config) { cfg.Collection.Path = "" },
	},
	"heatmap.count": {
		Type:       KeyTypeString,
		Desc:       "Which learn events count: first (once per card) or all",
		DefaultStr: "first",
		get:        func(cfg *Config) string { return cfg.Heatmap.Count },
		set: func(cfg *Config, v string) error {
			switch v {
			case "first", "all":
				cfg.Heatmap.Count = v
				return nil
			}
			return fmt.Errorf("invalid value %q for heatmap.count (use first or all)", v)
		},
		unset: func(cfg *Config) { cfg.Heatmap.Count = "first" },
	},
	"heatmap.fill": {
		Type:       KeyTypeBool,
		Desc:       "Emit zero-valued days between the first active day and today",
		DefaultStr: "false",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.Heatmap.Fill) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for heatmap.fill: %w", v, err)
			}
			cfg.Heatmap.Fill = b
			return nil
		},
		unset: func(cfg *Config) { cfg.Heatmap.Fill = false },
	},
	"serve.addr": {
		Type:       KeyTypeString,
		Desc:       "Listen address for `streakmap serve`",
		DefaultStr: DefaultServeAddr,
		get:        func(cfg *Config) string { return cfg.Serve.Addr },
		set:        func(cfg *Config, v string) error { cfg.Serve.Addr = v; return nil },
		unset:      func(cfg *Config) { cfg.Serve.Addr = DefaultServeAddr },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseHour parses a rollover hour in [0,23].
func ParseHour(s string) (int, error) {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("rollover must be an hour between 0 and 23, got %q", s)
	}
	return h, nil
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
